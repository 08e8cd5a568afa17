package database

type Sprint struct {
	Id         int    `json:"id"`
	SprintCode string `json:"sprintCode"`
	Name       string `json:"name"`
}

type Template struct {
	Id      int    `json:"id"`
	Message string `json:"message"`
}

// Message records that a user completed a sprint and which template was
// used to congratulate them. It has no id column of its own; a row is
// identified by (sprint_id, username).
type Message struct {
	SprintId   int    `json:"sprintId"`
	TemplateId int    `json:"templateId"`
	Username   string `json:"username"`
}

// MessageListing is a message joined against its sprint, as returned by
// list queries.
type MessageListing struct {
	Username   string `json:"username"`
	SprintCode string `json:"sprintCode"`
	TemplateId int    `json:"templateId"`
}

type CreateSprintParams struct {
	SprintCode string
	Name       string
}

// UpdateSprintParams carries a partial update; nil fields keep the
// current column value.
type UpdateSprintParams struct {
	Id         int
	SprintCode *string
	Name       *string
}

type CreateTemplateParams struct {
	Message string
}

type UpdateTemplateParams struct {
	Id      int
	Message *string
}
