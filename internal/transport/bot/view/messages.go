package view

const (
	StartMessage = `🎁 <b>Giftwatch</b>

Рассылаю новые звёздные подарки из каталога Telegram.

/status — состояние монитора
/pause — приостановить опрос
/resume — возобновить опрос
/recent — последние находки`

	MonitorPaused  = "⏸ Монитор приостановлен"
	MonitorResumed = "▶️ Монитор возобновлён"
	RecentEmpty    = "Архив пока пуст"
)
