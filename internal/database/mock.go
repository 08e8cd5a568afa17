package database

import (
	"github.com/stretchr/testify/mock"
)

type MockSprintbotRepository struct {
	mock.Mock
}

func (m *MockSprintbotRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockSprintbotRepository) ListSprints() ([]Sprint, error) {
	args := m.Called()
	return args.Get(0).([]Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) GetSprintById(id int) (Sprint, error) {
	args := m.Called(id)
	return args.Get(0).(Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) GetSprintByCode(code string) (Sprint, error) {
	args := m.Called(code)
	return args.Get(0).(Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) CreateSprint(params CreateSprintParams) (Sprint, error) {
	args := m.Called(params)
	return args.Get(0).(Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) UpdateSprint(params UpdateSprintParams) (Sprint, error) {
	args := m.Called(params)
	return args.Get(0).(Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) DeleteSprint(id int) (Sprint, error) {
	args := m.Called(id)
	return args.Get(0).(Sprint), args.Error(1)
}
func (m *MockSprintbotRepository) ListTemplates() ([]Template, error) {
	args := m.Called()
	return args.Get(0).([]Template), args.Error(1)
}
func (m *MockSprintbotRepository) GetTemplateById(id int) (Template, error) {
	args := m.Called(id)
	return args.Get(0).(Template), args.Error(1)
}
func (m *MockSprintbotRepository) GetTemplateByMessage(message string) (Template, error) {
	args := m.Called(message)
	return args.Get(0).(Template), args.Error(1)
}
func (m *MockSprintbotRepository) CreateTemplate(params CreateTemplateParams) (Template, error) {
	args := m.Called(params)
	return args.Get(0).(Template), args.Error(1)
}
func (m *MockSprintbotRepository) UpdateTemplate(params UpdateTemplateParams) (Template, error) {
	args := m.Called(params)
	return args.Get(0).(Template), args.Error(1)
}
func (m *MockSprintbotRepository) DeleteTemplate(id int) (Template, error) {
	args := m.Called(id)
	return args.Get(0).(Template), args.Error(1)
}
func (m *MockSprintbotRepository) ListMessages(sprintCode, username string) ([]MessageListing, error) {
	args := m.Called(sprintCode, username)
	return args.Get(0).([]MessageListing), args.Error(1)
}
func (m *MockSprintbotRepository) GetMessageBySprintAndUsername(sprintId int, username string) (Message, error) {
	args := m.Called(sprintId, username)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockSprintbotRepository) GetRandomTemplateId() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}
func (m *MockSprintbotRepository) CreateMessage(msg Message) (Message, error) {
	args := m.Called(msg)
	return args.Get(0).(Message), args.Error(1)
}
