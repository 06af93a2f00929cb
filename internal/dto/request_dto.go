package dto

type RegisterRequest struct {
	FName    string `json:"fname" form:"fname"`
	MName    string `json:"mname" form:"mname"`
	LName    string `json:"lname" form:"lname"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Roles    int    `json:"roles" form:"roles"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// SaveQuestionRequest serves create and update; nil fields are left alone on
// update.
type SaveQuestionRequest struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
	Urgent  *bool   `json:"urgent" form:"urgent"`

	// Tags, when present, replaces the question's tag set.
	Tags *[]uint `json:"tags" form:"tags"`
}

// SaveAnswerRequest serves create and update. MakePrivate is a pseudo-field:
// it drives privated_at but is never stored itself.
type SaveAnswerRequest struct {
	QuestionID  *uint    `json:"question_id" form:"question_id"`
	Content     *string  `json:"content" form:"content"`
	Price       *float64 `json:"price" form:"price"`
	Currency    *string  `json:"currency" form:"currency"`
	MakePrivate bool     `json:"make_private" form:"make_private"`
}

type CastVoteRequest struct {
	Value int `json:"value"`
}

type SetBestRequest struct {
	Best bool `json:"best"`
}

// FeedParams mirrors the feed query string: role filter plus the
// relation-inclusion lists.
type FeedParams struct {
	Roles     int
	With      []string
	WithCount []string
	Page      int
	PerPage   int
}
