package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/models"
)

const (
	authCookieName     = "cycleinsights_auth"
	languageCookieName = "cycleinsights_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && value != "" {
		return value
	}
	return key
}
