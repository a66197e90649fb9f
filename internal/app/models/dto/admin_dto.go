package dto

// TopDownloadEntry is one row of the top-downloads stat.
type TopDownloadEntry struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	DownloadsCount int64  `json:"downloadsCount"`
}

// SubjectCount is one row of the per-subject stat.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int64  `json:"count"`
}

// StatsResponse aggregates catalog statistics over approved resources.
type StatsResponse struct {
	TopDownloads []TopDownloadEntry `json:"topDownloads"`
	BySubject    []SubjectCount     `json:"bySubject"`
}
