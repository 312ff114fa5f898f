package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedDocumentTypes = []string{MimeImage, MimePDF, "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/zip", "text/plain"}
)
