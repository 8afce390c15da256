package generator

import "google.golang.org/genai"

// contentBundleSchema constrains the generation response to the ContentBundle
// wire shape. Field names must match the json tags in types.go.
func contentBundleSchema() *genai.Schema {
	competitor := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"url":               {Type: genai.TypeString},
			"performanceScore":  {Type: genai.TypeNumber},
			"demographics":      {Type: genai.TypeString},
			"marketingStrategy": {Type: genai.TypeString},
			"strengths":         {Type: genai.TypeString},
			"failures":          {Type: genai.TypeString},
			"gapIdentified":     {Type: genai.TypeString},
		},
		Required: []string{
			"url", "performanceScore", "demographics",
			"marketingStrategy", "strengths", "failures", "gapIdentified",
		},
	}

	strategy := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"competitorAnalysis":       {Type: genai.TypeArray, Items: competitor},
			"gapAnalysis":              {Type: genai.TypeString},
			"contentPlan":              {Type: genai.TypeString},
			"projectedTrafficIncrease": {Type: genai.TypeNumber},
		},
		Required: []string{
			"competitorAnalysis", "gapAnalysis", "contentPlan", "projectedTrafficIncrease",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"strategy":        strategy,
			"htmlContent":     {Type: genai.TypeString},
			"cssContent":      {Type: genai.TypeString},
			"jsContent":       {Type: genai.TypeString},
			"jsonLd":          {Type: genai.TypeString},
			"metaTitle":       {Type: genai.TypeString},
			"metaDescription": {Type: genai.TypeString},
		},
		Required: []string{
			"strategy", "htmlContent", "cssContent", "jsContent",
			"jsonLd", "metaTitle", "metaDescription",
		},
	}
}

// evaluationSchema constrains the post-evaluation response.
func evaluationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":       {Type: genai.TypeNumber},
			"status":      {Type: genai.TypeString},
			"analysis":    {Type: genai.TypeString},
			"suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"score", "status", "analysis", "suggestions"},
	}
}

// contentBundleJSONSchema is the same contract in plain JSON-schema form for
// backends that take an untyped schema document (OpenAI structured outputs).
func contentBundleJSONSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "number"}

	competitor := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":               str,
			"performanceScore":  num,
			"demographics":      str,
			"marketingStrategy": str,
			"strengths":         str,
			"failures":          str,
			"gapIdentified":     str,
		},
		"required": []string{
			"url", "performanceScore", "demographics",
			"marketingStrategy", "strengths", "failures", "gapIdentified",
		},
		"additionalProperties": false,
	}

	strategy := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"competitorAnalysis":       map[string]any{"type": "array", "items": competitor},
			"gapAnalysis":              str,
			"contentPlan":              str,
			"projectedTrafficIncrease": num,
		},
		"required": []string{
			"competitorAnalysis", "gapAnalysis", "contentPlan", "projectedTrafficIncrease",
		},
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strategy":        strategy,
			"htmlContent":     str,
			"cssContent":      str,
			"jsContent":       str,
			"jsonLd":          str,
			"metaTitle":       str,
			"metaDescription": str,
		},
		"required": []string{
			"strategy", "htmlContent", "cssContent", "jsContent",
			"jsonLd", "metaTitle", "metaDescription",
		},
		"additionalProperties": false,
	}
}

// evaluationJSONSchema mirrors evaluationSchema for OpenAI backends.
func evaluationJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":       map[string]any{"type": "number"},
			"status":      map[string]any{"type": "string"},
			"analysis":    map[string]any{"type": "string"},
			"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"score", "status", "analysis", "suggestions"},
		"additionalProperties": false,
	}
}
