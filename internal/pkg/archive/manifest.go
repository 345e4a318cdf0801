// Package archive implements the portable backup container: a zip holding a
// pretty-printed backup.json manifest plus raw attachment bytes under files/.
// Every cross-record reference inside the manifest uses a natural key
// (student_id for people, stage name for stages, storage path for files)
// because surrogate ids do not survive an export/import cycle.
package archive

// Version is the manifest format tag written by the exporter and accepted by
// the importer.
const Version = "3.0"

// ManifestEntry is the fixed name of the manifest inside the zip.
const ManifestEntry = "backup.json"

// FilesPrefix is the zip directory holding attachment bytes.
const FilesPrefix = "files/"

type Manifest struct {
	Version     string      `json:"version"`
	ExportedAt  string      `json:"exported_at"`
	ProjectName string      `json:"project_name"`
	Group       Group       `json:"group"`
	Members     []Member    `json:"members"`
	Stages      []Stage     `json:"stages"`
	Tasks       []Task      `json:"tasks"`
	Messages    []Message   `json:"messages,omitempty"`
	Files       []FileEntry `json:"files,omitempty"`
}

// Group carries all project fields except the surrogate id. LeaderID is
// always null in the portable form; the importing user becomes the leader.
type Group struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	ClassCode       *string `json:"class_code"`
	InstructorName  *string `json:"instructor_name"`
	InstructorEmail *string `json:"instructor_email"`
	AdditionalInfo  *string `json:"additional_info"`
	ChatLink        *string `json:"chat_link"`
	LeaderID        *string `json:"leader_id"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	ImageURL        *string `json:"image_url"`
}

type MemberProfile struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

// Member carries the legacy user id only as advisory metadata; restore keys
// people by Profile.StudentID.
type Member struct {
	UserID   string        `json:"user_id"`
	Role     string        `json:"role"`
	JoinedAt string        `json:"joined_at"`
	Profile  MemberProfile `json:"profile"`
}

type Stage struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"order_index"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`

	// Tasks is reserved and always empty; tasks carry their stage by name.
	Tasks []Task `json:"tasks"`
}

type Assignment struct {
	StudentID string `json:"student_id"`
}

type Score struct {
	StudentID      string  `json:"student_id"`
	BaseScore      float64 `json:"base_score"`
	LatePenalty    float64 `json:"late_penalty"`
	ReviewPenalty  float64 `json:"review_penalty"`
	ReviewCount    int     `json:"review_count"`
	EarlyBonus     float64 `json:"early_bonus"`
	BugHunterBonus float64 `json:"bug_hunter_bonus"`
	FinalScore     float64 `json:"final_score"`
}

type Submission struct {
	StudentID      string  `json:"student_id"`
	SubmissionLink *string `json:"submission_link"`
	Note           *string `json:"note"`
	SubmittedAt    string  `json:"submitted_at"`
	SubmissionType string  `json:"submission_type"`
	FilePath       *string `json:"file_path"`
	FileName       *string `json:"file_name"`
	FileSize       *int64  `json:"file_size"`
}

type Task struct {
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	Status         string       `json:"status"`
	Deadline       *string      `json:"deadline"`
	SubmissionLink *string      `json:"submission_link"`
	StageName      *string      `json:"stage_name"`
	Assignments    []Assignment `json:"assignments"`
	Scores         []Score      `json:"scores"`
	Submissions    []Submission `json:"submissions"`
}

type Message struct {
	StudentID  string `json:"student_id"`
	Content    string `json:"content"`
	SourceType string `json:"source_type"`
	CreatedAt  string `json:"created_at"`
}

// FileEntry maps an attachment's original storage path to its zip entry.
type FileEntry struct {
	OriginalPath string `json:"original_path"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
	ZipPath      string `json:"zip_path"`
}
