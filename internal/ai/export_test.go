package ai

// Constructors over the SDK seams, for the external test package.
var (
	NewGeminiWithModels   = func(m geminiModels, model string) Completer { return newGeminiClient(m, model) }
	NewBedrockWithInvoker = func(rt bedrockInvoker, modelID string) Completer { return newBedrockClient(rt, modelID) }
)
