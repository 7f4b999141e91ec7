package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageTemplate is a staff-editable customer message with [NOME] and
// [VEICULO] placeholders, used by WhatsApp/SMS notifications.
type MessageTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title    string    `gorm:"not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	IsActive bool      `gorm:"default:true" json:"active"`

	gorm.Model `json:"-"`
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// Render substitutes the customer placeholders into the template body
func (t *MessageTemplate) Render(customerName, vehicleModel string) string {
	msg := strings.ReplaceAll(t.Content, "[NOME]", customerName)
	return strings.ReplaceAll(msg, "[VEICULO]", vehicleModel)
}
