package archive

import "encoding/json"

// SubmissionItem is one element of a JSON-encoded submission payload. Link
// items carry no file fields; file items reference object storage by path.
type SubmissionItem struct {
	Type     string `json:"type,omitempty"`
	Link     string `json:"link,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// ParseSubmissionItems extracts file references from a raw submission
// payload. A payload that is not a JSON list (a plain link, or empty) yields
// no items; that is not an error.
func ParseSubmissionItems(submissionLink *string) []SubmissionItem {
	if submissionLink == nil || *submissionLink == "" {
		return nil
	}
	var items []SubmissionItem
	if err := json.Unmarshal([]byte(*submissionLink), &items); err != nil {
		return nil
	}
	out := make([]SubmissionItem, 0, len(items))
	for _, it := range items {
		if it.FilePath != "" {
			if it.FileName == "" {
				it.FileName = "file"
			}
			out = append(out, it)
		}
	}
	return out
}

// RewriteSubmissionLink replaces file paths inside a JSON-encoded submission
// payload using pathMap. Items without a mapping keep their original path;
// payloads that are not JSON lists are returned untouched.
func RewriteSubmissionLink(submissionLink *string, pathMap map[string]string) *string {
	if submissionLink == nil || *submissionLink == "" {
		return submissionLink
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(*submissionLink), &items); err != nil {
		return submissionLink
	}
	changed := false
	for _, it := range items {
		p, ok := it["file_path"].(string)
		if !ok || p == "" {
			continue
		}
		if np, ok := pathMap[p]; ok {
			it["file_path"] = np
			changed = true
		}
	}
	if !changed {
		return submissionLink
	}
	data, err := json.Marshal(items)
	if err != nil {
		return submissionLink
	}
	s := string(data)
	return &s
}
