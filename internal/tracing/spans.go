package tracing

// Span attribute keys used across the registry. These constants define
// the semantic conventions for span attributes so traces from different
// operations stay queryable with a single vocabulary.
const (
	// Colorbar attributes
	AttrColorbarName     = "colorbar.name"
	AttrColorbarCount    = "colorbar.count"
	AttrColorbarCategory = "colorbar.category"
	AttrReferenceTarget  = "reference.target"

	// Colormap attributes
	AttrColormapName = "colormap.name"
	AttrColormapSize = "colormap.size"

	// File attributes
	AttrFilePath  = "file.path"
	AttrFileCount = "file.count"

	// Validation attributes
	AttrValidationErrors = "validation.error_count"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixRegistry = "registry."
	SpanPrefixColormap = "colormap."
	SpanPrefixRender   = "render."
)

// Span names for registry operations.
const (
	SpanRegisterFile = SpanPrefixRegistry + "register_file"
	SpanRegisterDir  = SpanPrefixRegistry + "register_dir"
	SpanList         = SpanPrefixRegistry + "list"
	SpanValidate     = SpanPrefixRegistry + "validate"
	SpanExport       = SpanPrefixRegistry + "export"
	SpanColormapRead = SpanPrefixColormap + "read"
	SpanRenderBar    = SpanPrefixRender + "colorbar"
)

// Event names for span events.
const (
	EventRecordValidated   = "record.validated"
	EventReferenceResolved = "reference.resolved"
	EventErrorOccurred     = "error.occurred"
)
