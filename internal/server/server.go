package server

// Server объединяет специфичные HTTP-серверы. Сейчас поверхность одна —
// статус монитора и архив подарков.
type Server struct {
	GiftServer
}

func NewServer(
	giftServer GiftServer,
) Server {
	return Server{
		GiftServer: giftServer,
	}
}
