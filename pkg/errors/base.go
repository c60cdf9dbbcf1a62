package errors

import "net/http"

// ============================================================================
// Success
// ============================================================================

// OK represents a successful operation.
var OK = Register(&Errno{
	Code:      0,
	HTTP:      http.StatusOK,
	MessageEN: "Success",
	MessageZH: "成功",
})

// ============================================================================
// Request Errors (Category: 01)
// ============================================================================

var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		MessageEN: "Bad request",
		MessageZH: "请求错误",
	})

	// ErrInvalidParam indicates an invalid parameter.
	ErrInvalidParam = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 1),
		HTTP:      http.StatusBadRequest,
		MessageEN: "Invalid parameter",
		MessageZH: "参数无效",
	})

	// ErrMissingParam indicates a missing required parameter.
	ErrMissingParam = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 2),
		HTTP:      http.StatusBadRequest,
		MessageEN: "Missing required parameter",
		MessageZH: "缺少必需参数",
	})

	// ErrRequestTooLarge indicates the request body is too large.
	ErrRequestTooLarge = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 3),
		HTTP:      http.StatusRequestEntityTooLarge,
		MessageEN: "Request entity too large",
		MessageZH: "请求体过大",
	})

	// ErrUnsupportedMediaType indicates unsupported media type.
	ErrUnsupportedMediaType = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 4),
		HTTP:      http.StatusUnsupportedMediaType,
		MessageEN: "Unsupported media type",
		MessageZH: "不支持的媒体类型",
	})
)

// ============================================================================
// Resource Errors (Category: 04)
// ============================================================================

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryResource, 0),
		HTTP:      http.StatusNotFound,
		MessageEN: "Resource not found",
		MessageZH: "资源不存在",
	})

	// ErrDocumentNotFound indicates the document does not exist.
	ErrDocumentNotFound = Register(&Errno{
		Code:      MakeCode(ServiceIngest, CategoryResource, 0),
		HTTP:      http.StatusNotFound,
		MessageEN: "Document not found",
		MessageZH: "文档不存在",
	})
)

// ============================================================================
// Internal Errors (Category: 07/08/09)
// ============================================================================

var (
	// ErrInternal indicates an unexpected internal error.
	ErrInternal = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Internal server error",
		MessageZH: "内部服务器错误",
	})

	// ErrDatabase indicates a relational store failure.
	ErrDatabase = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryDatabase, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Database error",
		MessageZH: "数据库错误",
	})

	// ErrCache indicates an answer cache failure.
	ErrCache = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryCache, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Cache error",
		MessageZH: "缓存错误",
	})

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryTimeout, 0),
		HTTP:      http.StatusGatewayTimeout,
		MessageEN: "Operation timed out",
		MessageZH: "操作超时",
	})
)

// ============================================================================
// Ingestion Pipeline Errors (Service: 20)
// ============================================================================

var (
	// ErrEmptyContent indicates extraction produced no indexable text.
	// No document record is created in this case.
	ErrEmptyContent = Register(&Errno{
		Code:      MakeCode(ServiceIngest, CategoryRequest, 0),
		HTTP:      http.StatusUnprocessableEntity,
		MessageEN: "No indexable content found in document",
		MessageZH: "文档中未找到可索引内容",
	})

	// ErrIngestFailed indicates the ingestion pipeline failed after
	// compensation, leaving no partial state behind.
	ErrIngestFailed = Register(&Errno{
		Code:      MakeCode(ServiceIngest, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		MessageEN: "Document ingestion failed",
		MessageZH: "文档入库失败",
	})
)

// ============================================================================
// External Capability Errors (Service: 90)
// ============================================================================

var (
	// ErrExtraction indicates the OCR/text extraction stage failed.
	ErrExtraction = Register(&Errno{
		Code:      MakeCode(ServiceCapability, CategoryNetwork, 0),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Text extraction failed",
		MessageZH: "文本提取失败",
	})

	// ErrEmbedding indicates the embedding stage failed.
	ErrEmbedding = Register(&Errno{
		Code:      MakeCode(ServiceCapability, CategoryNetwork, 1),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Embedding computation failed",
		MessageZH: "向量计算失败",
	})

	// ErrGeneration indicates the answer generation stage failed.
	ErrGeneration = Register(&Errno{
		Code:      MakeCode(ServiceCapability, CategoryNetwork, 2),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Answer generation failed",
		MessageZH: "答案生成失败",
	})

	// ErrIndexWrite indicates a vector index write failed.
	ErrIndexWrite = Register(&Errno{
		Code:      MakeCode(ServiceCapability, CategoryNetwork, 3),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Vector index write failed",
		MessageZH: "向量索引写入失败",
	})

	// ErrIndexUnavailable indicates the vector index is unreachable.
	ErrIndexUnavailable = Register(&Errno{
		Code:      MakeCode(ServiceCapability, CategoryNetwork, 4),
		HTTP:      http.StatusServiceUnavailable,
		MessageEN: "Vector index unavailable",
		MessageZH: "向量索引不可用",
	})

	// ErrRetrieval indicates the retrieval stage of answering failed.
	ErrRetrieval = Register(&Errno{
		Code:      MakeCode(ServiceQA, CategoryNetwork, 0),
		HTTP:      http.StatusBadGateway,
		MessageEN: "Chunk retrieval failed",
		MessageZH: "片段检索失败",
	})
)
