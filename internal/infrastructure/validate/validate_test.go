package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	req := require.New(t)

	req.Error(Required()(""))
	req.Error(Required()("   "))
	req.NoError(Required()("value"))
}

func TestLengths(t *testing.T) {
	req := require.New(t)

	req.Error(MinLength(3)("ab"))
	req.NoError(MinLength(3)("abc"))

	req.Error(MaxLength(3)("abcd"))
	req.NoError(MaxLength(3)("abc"))

	req.Error(LengthBetween(2, 4)("a"))
	req.Error(LengthBetween(2, 4)("abcde"))
	req.NoError(LengthBetween(2, 4)("abc"))
}

func TestCompose_FirstErrorWins(t *testing.T) {
	req := require.New(t)

	v := Compose(Required(), MinLength(5))
	err := v("")
	req.EqualError(err, "cannot be empty")

	err = v("abc")
	req.EqualError(err, "too short, minimum 5 characters")

	req.NoError(v("abcde"))
}

func TestField_PrefixesName(t *testing.T) {
	req := require.New(t)

	v := Field("roomId", Required())
	err := v("")
	req.ErrorContains(err, "roomId")
}

func TestMatchesAndHelpers(t *testing.T) {
	req := require.New(t)

	roomID := Matches(`^[A-Z0-9-]+$`, "room id can only contain letters, numbers, and hyphens")
	req.NoError(roomID("ABC-123"))
	req.Error(roomID("abc"))

	req.Error(NoSpaces()("has space"))
	req.NoError(NoSpaces()("nospace"))

	req.Error(Alphanumeric()("with-hyphen"))
	req.NoError(Alphanumeric()("abc123"))

	req.NoError(OneOf("a", "b")("a"))
	req.Error(OneOf("a", "b")("c"))
}
