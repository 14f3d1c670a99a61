package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Reply ответ движка на сообщение пользователя
type Reply struct {
	SessionID string   `json:"sessionId"`
	Message   string   `json:"message"`
	Options   []string `json:"options,omitempty"`
	Finished  bool     `json:"finished"`
}

// Engine движок диалогового сценария бронирования
// Диалог ведёт клиента по графу узлов: выбор питомца, выбор услуги,
// время, сводка. До подтверждения сводки запись не создаётся
type Engine struct {
	nodes         map[nodeID]node
	sessions      *SessionManager
	petClient     PetServiceClient
	catalogClient CatalogServiceClient
	creator       AppointmentCreator
	logger        Logger
}

// NewEngine создает движок диалога с собранным графом узлов
func NewEngine(
	sessions *SessionManager,
	petClient PetServiceClient,
	catalogClient CatalogServiceClient,
	creator AppointmentCreator,
	logger Logger,
) *Engine {
	e := &Engine{
		sessions:      sessions,
		petClient:     petClient,
		catalogClient: catalogClient,
		creator:       creator,
		logger:        logger,
	}
	e.nodes = e.buildNodes()
	return e
}

// Start открывает новую сессию диалога для пользователя
func (e *Engine) Start(ctx context.Context, userID int64) (*Reply, error) {
	s := e.sessions.Create(userID, nodeSelectPet)
	e.logger.Info("Flow: started session %s for user=%d", s.ID, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return e.render(ctx, s, "")
}

// Message обрабатывает сообщение пользователя в рамках сессии
// Сессия доступна только открывшему её пользователю. Ответ на узел
// с вариантами сопоставляется по номеру или тексту варианта,
// свободный текст уходит в обработчик узла ввода
func (e *Engine) Message(ctx context.Context, sessionID string, userID int64, text string) (*Reply, error) {
	s, err := e.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if s.UserID != userID {
		e.logger.Warn("Flow: user=%d tried to use session %s of user=%d", userID, sessionID, s.UserID)
		return nil, ErrSessionAccessDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Finished {
		return nil, ErrSessionFinished
	}

	current, ok := e.nodes[s.Current]
	if !ok {
		e.logger.Error("Flow: session %s stuck on unknown node %q", s.ID, s.Current)
		return nil, fmt.Errorf("%w: unknown node %q", ErrInternal, s.Current)
	}

	text = strings.TrimSpace(text)

	switch n := current.(type) {
	case inputNode:
		next, preamble, err := n.handle(ctx, s, text)
		if err != nil {
			// Ошибка разбора: переспрашиваем, оставаясь на том же узле
			return e.render(ctx, s, err.Error())
		}
		s.Current = next
		return e.render(ctx, s, preamble)

	case staticNode, dynamicNode:
		opt, ok := matchOption(s.lastOptions, text)
		if !ok {
			e.logger.Warn("Flow: session %s got unmatched answer %q on node %s", s.ID, text, s.Current)
			return e.render(ctx, s, msgUnknownOption)
		}
		next, preamble, err := opt.run(ctx, s)
		if err != nil {
			e.logger.Error("Flow: session %s option %q failed: %v", s.ID, opt.label, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		s.Current = next
		return e.render(ctx, s, preamble)

	default:
		return nil, fmt.Errorf("%w: node %q does not accept messages", ErrInternal, s.Current)
	}
}

// Abandon завершает сессию без создания записи, сбрасывая черновик
// Чужую сессию завершить нельзя
func (e *Engine) Abandon(sessionID string, userID int64) error {
	s, err := e.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if s.UserID != userID {
		e.logger.Warn("Flow: user=%d tried to abandon session %s of user=%d", userID, sessionID, s.UserID)
		return ErrSessionAccessDenied
	}

	if err := e.sessions.Delete(sessionID); err != nil {
		return err
	}
	e.logger.Info("Flow: session %s abandoned", sessionID)
	return nil
}

// render строит ответ по текущему узлу сессии
// preamble предшествует тексту узла (результат предыдущего шага)
func (e *Engine) render(ctx context.Context, s *Session, preamble string) (*Reply, error) {
	current, ok := e.nodes[s.Current]
	if !ok {
		return nil, fmt.Errorf("%w: unknown node %q", ErrInternal, s.Current)
	}

	var message string
	var opts []option

	switch n := current.(type) {
	case staticNode:
		message = n.message
		opts = n.options
	case inputNode:
		message = n.prompt
	case dynamicNode:
		var err error
		message, opts, err = n.render(ctx, s)
		if err != nil {
			e.logger.Error("Flow: session %s failed to render node %s: %v", s.ID, s.Current, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	case terminalNode:
		message = n.message
		s.Finished = true
		s.Draft = Draft{}
	}

	s.lastOptions = opts

	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.label)
	}

	if preamble != "" {
		if message != "" {
			message = preamble + "\n\n" + message
		} else {
			message = preamble
		}
	}

	return &Reply{
		SessionID: s.ID,
		Message:   message,
		Options:   labels,
		Finished:  s.Finished,
	}, nil
}

// matchOption сопоставляет ответ пользователя с предложенными вариантами
// Принимается порядковый номер (с единицы) либо текст варианта
func matchOption(opts []option, text string) (option, bool) {
	if idx, err := strconv.Atoi(text); err == nil {
		if idx >= 1 && idx <= len(opts) {
			return opts[idx-1], true
		}
		return option{}, false
	}

	for _, o := range opts {
		if strings.EqualFold(o.label, text) {
			return o, true
		}
	}
	return option{}, false
}
