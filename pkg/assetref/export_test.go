package assetref

// ParseReferenceVariant reports which variant [parseReference] returns for
// raw: "absolute", "relative" or "malformed".
func ParseReferenceVariant(raw string) string {
	switch parseReference(raw).(type) {
	case absoluteRef:
		return "absolute"
	case relativeRef:
		return "relative"
	case malformedRef:
		return "malformed"
	}

	return ""
}
