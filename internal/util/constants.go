package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCSV   = "text/csv"
	MimePlain = "text/plain"
)

// http.DetectContentType 对 CSV 内容返回 text/plain
var AllowedImportMimeTypes = []string{MimePlain, MimeCSV}

const MaxImportFileSize = 2 << 20
