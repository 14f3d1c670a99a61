package flow

import "context"

// nodeID идентификатор узла сценария
type nodeID string

const (
	nodeSelectPet     nodeID = "select_pet"
	nodeNewPetName    nodeID = "new_pet_name"
	nodeNewPetBreed   nodeID = "new_pet_breed"
	nodeNewPetWeight  nodeID = "new_pet_weight"
	nodeNewPetConfirm nodeID = "new_pet_confirm"
	nodeSelectService nodeID = "select_service"
	nodeSelectTime    nodeID = "select_time"
	nodeConfirm       nodeID = "confirm"
	nodeDone          nodeID = "done"
	nodeCancelled     nodeID = "cancelled"
)

// node узел диалогового сценария. Ровно три вида:
// статичный текст с фиксированными вариантами, ввод свободного текста
// и узел с вариантами, зависящими от данных
type node interface {
	isNode()
}

// option один вариант ответа, предложенный узлом
// run выполняется при выборе варианта и возвращает следующий узел
// вместе с необязательным сообщением-предисловием
type option struct {
	label string
	run   func(ctx context.Context, s *Session) (nodeID, string, error)
}

// staticNode узел с фиксированным текстом и вариантами
type staticNode struct {
	message string
	options []option
}

func (staticNode) isNode() {}

// inputNode узел, ожидающий свободный текст
// handle разбирает ввод и возвращает следующий узел; ошибка разбора
// возвращается пользователю, узел остаётся текущим
type inputNode struct {
	prompt string
	handle func(ctx context.Context, s *Session, input string) (nodeID, string, error)
}

func (inputNode) isNode() {}

// dynamicNode узел, текст и варианты которого зависят от сессии
type dynamicNode struct {
	render func(ctx context.Context, s *Session) (string, []option, error)
}

func (dynamicNode) isNode() {}

// terminalNode завершающий узел: сообщение без вариантов, сессия закрыта
type terminalNode struct {
	message string
}

func (terminalNode) isNode() {}
