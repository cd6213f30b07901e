package openai

// gjson paths into OpenAI's chat.completion.chunk format:
//
//	{"id":"chatcmpl-1","object":"chat.completion.chunk","model":"gpt-4o",
//	 "choices":[{"index":0,"delta":{"role":"assistant","content":"Hi"},"finish_reason":null}]}
const (
	pathObject       = "object"
	pathModel        = "model"
	pathChoices      = "choices"
	pathContent      = "choices.0.delta.content"
	pathRole         = "choices.0.delta.role"
	pathFinishReason = "choices.0.finish_reason"
	pathError        = "error"
	pathErrorMessage = "error.message"
)

// chunkObject is the "object" value of a streamed completion chunk.
const chunkObject = "chat.completion.chunk"
