package client

// Result state markers returned by the grading endpoints.
const (
	ResultPending     = "JG"
	ResultAccepted    = "AC"
	ResultWrongAnswer = "WA"
	ResultTimeLimit   = "TLE"
	ResultMemoryLimit = "MLE"
	ResultRuntimeErr  = "RE"
	ResultCompileErr  = "CE"
)

type Course struct {
	CourseID    int    `json:"course_id"`
	CourseName  string `json:"course_name"`
	CourseCode  string `json:"course_code"`
	Description string `json:"description"`
}

type CourseList struct {
	List []Course `json:"list"`
}

type Homework struct {
	HomeworkID    int    `json:"homeworkId"`
	HomeworkName  string `json:"homeworkName"`
	NextDate      string `json:"nextDate"`
	ProblemsCount int    `json:"problemsCount"`
	// 1=pending, 2=active, 3=closed, 4=finished
	State int `json:"state"`

	// Filled in by the enrichment pass, not present in the list payload.
	Details *HomeworkInfo `json:"-"`
}

type HomeworkList struct {
	List []Homework `json:"list"`
}

type HomeworkInfo struct {
	CurrentScore float64 `json:"currentScore"`
	TotalScore   float64 `json:"totalScore"`
	AttemptRate  float64 `json:"attemptRate"`
}

type Problem struct {
	ProblemID   int    `json:"problemId"`
	ProblemName string `json:"problemName"`

	// Filled in by the enrichment pass.
	Details *ProblemInfo       `json:"-"`
	Records []SubmissionRecord `json:"-"`
}

type ProblemList struct {
	List []Problem `json:"list"`
}

type ProblemInfo struct {
	ProblemType string `json:"problemType"`
	Content     string `json:"content"`
	// 0=stdio, 1=file IO
	IOMode int `json:"ioMode"`
	// 1..5, rendered as Noob..Demon
	Difficulty int `json:"difficulty"`
	// per-language limits, e.g. {"Java": 2000} in ms / MB
	TimeLimit   map[string]int `json:"timeLimit"`
	MemoryLimit map[string]int `json:"memoryLimit"`
	PublicTags  []string       `json:"publicTags"`
}

var difficultyNames = []string{"Unknown", "Noob", "Easy", "Normal", "Hard", "Demon"}

// DifficultyName renders the numeric difficulty level.
func (p *ProblemInfo) DifficultyName() string {
	if p == nil || p.Difficulty < 0 || p.Difficulty >= len(difficultyNames) {
		return difficultyNames[0]
	}
	return difficultyNames[p.Difficulty]
}

// IOModeName renders the IO mode flag.
func (p *ProblemInfo) IOModeName() string {
	if p != nil && p.IOMode == 1 {
		return "file IO"
	}
	return "standard IO"
}

// JavaTimeLimitMS returns the Java time limit in milliseconds, falling
// back to the Junit limit, or 0 when neither is declared.
func (p *ProblemInfo) JavaTimeLimitMS() int {
	if p == nil {
		return 0
	}
	if ms, ok := p.TimeLimit["Java"]; ok {
		return ms
	}
	if ms, ok := p.TimeLimit["Junit"]; ok {
		return ms
	}
	return 0
}

type SubmissionRecord struct {
	RecordID       int     `json:"recordId"`
	ResultState    string  `json:"resultState"`
	Score          float64 `json:"score"`
	SubmissionTime string  `json:"submissionTime"`
	// filename -> source, present only when the platform returns it
	Code map[string]string `json:"code"`
}

type RecordList struct {
	List []SubmissionRecord `json:"list"`
}

type SubmitResponse struct {
	RecordID int `json:"recordId"`
}

type TestCaseResult struct {
	Title   string `json:"title"`
	State   string `json:"state"`
	Time    int    `json:"time"`
	Memory  int    `json:"memory"`
	Message string `json:"message"`
}

type GradingResult struct {
	RecordID       int              `json:"recordId"`
	ProblemName    string           `json:"problemName"`
	ResultState    string           `json:"resultState"`
	Score          float64          `json:"score"`
	SubmissionTime string           `json:"submissionTime"`
	ResultList     []TestCaseResult `json:"resultList"`
}

// FullyAccepted reports whether the overall verdict is AC and every
// individual test case is AC as well. A run can carry an AC overall
// state while a case still failed, so both are checked.
func (g *GradingResult) FullyAccepted() bool {
	if g.ResultState != ResultAccepted {
		return false
	}
	for _, tc := range g.ResultList {
		if tc.State != ResultAccepted {
			return false
		}
	}
	return true
}
