package database

type SprintbotRepository interface {
	Ping() error

	ListSprints() ([]Sprint, error)
	GetSprintById(id int) (Sprint, error)
	GetSprintByCode(code string) (Sprint, error)
	CreateSprint(params CreateSprintParams) (Sprint, error)
	UpdateSprint(params UpdateSprintParams) (Sprint, error)
	DeleteSprint(id int) (Sprint, error)

	ListTemplates() ([]Template, error)
	GetTemplateById(id int) (Template, error)
	GetTemplateByMessage(message string) (Template, error)
	CreateTemplate(params CreateTemplateParams) (Template, error)
	UpdateTemplate(params UpdateTemplateParams) (Template, error)
	DeleteTemplate(id int) (Template, error)

	ListMessages(sprintCode, username string) ([]MessageListing, error)
	GetMessageBySprintAndUsername(sprintId int, username string) (Message, error)
	GetRandomTemplateId() (int, error)
	CreateMessage(msg Message) (Message, error)
}
