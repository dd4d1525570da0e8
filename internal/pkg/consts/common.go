package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
	MimePrefixText  = "text"
	MimePDF         = "application/pdf"
)

// 媒体类型
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypePDF   = "pdf"
	MediaTypeText  = "text"
)

// 可见性分类
const (
	ClassificationDraft        = "draft"
	ClassificationProfessional = "professional"
	ClassificationPersonal     = "personal"
)

// 模块归属
const (
	ModuleCategoryWork     = "work"
	ModuleCategoryPersonal = "personal"
)

// UncategorizedModule assign_module 的特殊目标，表示清空标签
const UncategorizedModule = "uncategorized"

// 批量操作
const (
	BatchAssignModule         = "assign_module"
	BatchAddTag               = "add_tag"
	BatchDelete               = "delete"
	BatchUpdateClassification = "update_classification"
	BatchMoveBucket           = "move_bucket"
)

// 排序作用域，聚合视图与搜索视图不允许排序
const (
	ReorderScopeAll    = "all"
	ReorderScopeSearch = "search"
)

// 内容类型
const (
	ContentKindArticles = "articles"
	ContentKindProjects = "projects"
	ContentKindPosts    = "posts"
)

const (
	MaxBatchSize   = 500
	MaxReorderSize = 1000
	// TextObjectLimit 从对象存储读取文本内容的上限
	TextObjectLimit = 1 << 20
)
