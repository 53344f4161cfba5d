// /internal/infrastructure/config/channels.go
package config

// Имена каналов доставки
const (
	ChannelTelegram = "telegram"
	ChannelFCM      = "fcm"
	ChannelNATS     = "nats"
)

// ChannelStatus - состояние канала уведомлений
type ChannelStatus struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

// Channels определяет, какие каналы доставки сконфигурированы.
// Канал без обязательных параметров просто выключен, это не ошибка.
func (c *Config) Channels() []ChannelStatus {
	telegram := ChannelStatus{Name: ChannelTelegram, Enabled: true}
	switch {
	case c.Telegram.BotToken == "":
		telegram = ChannelStatus{Name: ChannelTelegram, Reason: "TELEGRAM_TOKEN not set"}
	case c.Telegram.ChatID == "":
		telegram = ChannelStatus{Name: ChannelTelegram, Reason: "CHAT_ID not set"}
	}

	fcm := ChannelStatus{Name: ChannelFCM, Enabled: true}
	switch {
	case c.FCM.CredentialsFile == "":
		fcm = ChannelStatus{Name: ChannelFCM, Reason: "FCM_CREDENTIALS_FILE not set"}
	case c.FCM.ProjectID == "":
		fcm = ChannelStatus{Name: ChannelFCM, Reason: "FCM_PROJECT_ID not set"}
	}

	nats := ChannelStatus{Name: ChannelNATS, Enabled: true}
	if c.NATS.URL == "" {
		nats = ChannelStatus{Name: ChannelNATS, Reason: "NATS_URL not set"}
	}

	return []ChannelStatus{telegram, fcm, nats}
}

// ChannelEnabled - включен ли канал с именем name
func (c *Config) ChannelEnabled(name string) bool {
	for _, ch := range c.Channels() {
		if ch.Name == name {
			return ch.Enabled
		}
	}
	return false
}
