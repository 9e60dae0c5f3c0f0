package logging

// logParamsToZapParams flattens typed extras into zap's alternating
// key/value slice form.
func logParamsToZapParams(extra map[ExtraKey]any) []any {
	kv := make([]any, 0, 2*len(extra))
	for k, v := range extra {
		kv = append(kv, string(k), v)
	}
	return kv
}

func logParamsToZeroParams(extra map[ExtraKey]any) map[string]any {
	fields := make(map[string]any, len(extra))
	for k, v := range extra {
		fields[string(k)] = v
	}
	return fields
}
