package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
	"github.com/m04kA/PetSpa-BookingService/internal/usecase/create_appointment"
)

// Сообщения диалога
const (
	msgSelectPet        = "Кого записываем? Выберите питомца:"
	msgNoPets           = "У вас пока нет питомцев. Давайте добавим первого!"
	msgAddPet           = "Добавить нового питомца"
	msgAskPetName       = "Как зовут питомца?"
	msgAskPetBreed      = "Какой породы питомец?"
	msgAskPetWeight     = "Сколько весит питомец (кг)?"
	msgSelectService    = "Какая услуга нужна?"
	msgNoServices       = "К сожалению, сейчас нет доступных услуг. Попробуйте позже."
	msgAskTime          = "На какое время записать? Формат: 2006-01-02 15:04"
	msgConfirm          = "Подтвердить"
	msgChangeTime       = "Изменить время"
	msgCancel           = "Отменить"
	msgYes              = "Да"
	msgNo               = "Нет"
	msgDone             = "Ждём вас в салоне!"
	msgCancelled        = "Бронирование отменено. Возвращайтесь, когда будете готовы!"
	msgUnknownOption    = "Не понял ответ. Пожалуйста, выберите один из вариантов."
	msgSlotTaken        = "Это время уже занято. Давайте подберём другое."
	msgTimeInPast       = "Это время уже прошло. Выберите время в будущем."
	msgClosedDay        = "В воскресенье салон закрыт. Выберите другой день."
	msgOutsideHours     = "Салон работает с 09:00 до 18:00. Выберите время в рабочие часы."
	msgBadTimeFormat    = "Не получилось разобрать время. Формат: 2006-01-02 15:04, например 2025-10-15 10:00"
	msgEmptyInput       = "Нужен непустой ответ."
	msgBadWeight        = "Вес должен быть положительным числом, например 4.5"
	msgPetCreated       = "Питомец добавлен!"
	msgPetNotOwned      = "Этот питомец записан на другого владельца."
	msgServiceGone      = "Эта услуга больше недоступна. Выберите другую."
	msgAppointmentAbort = "Хорошо, начнём заново."
)

// buildNodes собирает граф диалога бронирования
func (e *Engine) buildNodes() map[nodeID]node {
	return map[nodeID]node{
		nodeSelectPet:     dynamicNode{render: e.renderSelectPet},
		nodeNewPetName:    inputNode{prompt: msgAskPetName, handle: handlePetName},
		nodeNewPetBreed:   inputNode{prompt: msgAskPetBreed, handle: handlePetBreed},
		nodeNewPetWeight:  inputNode{prompt: msgAskPetWeight, handle: handlePetWeight},
		nodeNewPetConfirm: dynamicNode{render: e.renderNewPetConfirm},
		nodeSelectService: dynamicNode{render: e.renderSelectService},
		nodeSelectTime:    inputNode{prompt: msgAskTime, handle: handleTime},
		nodeConfirm:       dynamicNode{render: e.renderConfirm},
		nodeDone:          terminalNode{message: msgDone},
		nodeCancelled:     terminalNode{message: msgCancelled},
	}
}

// renderSelectPet предлагает питомцев клиента
// Пустой список уводит в подсценарий регистрации питомца
func (e *Engine) renderSelectPet(ctx context.Context, s *Session) (string, []option, error) {
	pets, err := e.petClient.ListPetsForOwner(ctx, s.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list pets: %v", err)
	}

	opts := make([]option, 0, len(pets)+2)
	for _, pet := range pets {
		pet := pet
		label := pet.Name
		if pet.Breed != "" {
			label = fmt.Sprintf("%s (%s)", pet.Name, pet.Breed)
		}
		opts = append(opts, option{
			label: label,
			run: func(_ context.Context, s *Session) (nodeID, string, error) {
				s.Draft.PetID = pet.ID
				s.Draft.PetName = pet.Name
				return nodeSelectService, "", nil
			},
		})
	}

	opts = append(opts,
		option{
			label: msgAddPet,
			run: func(_ context.Context, _ *Session) (nodeID, string, error) {
				return nodeNewPetName, "", nil
			},
		},
		cancelOption(),
	)

	message := msgSelectPet
	if len(pets) == 0 {
		message = msgNoPets
	}
	return message, opts, nil
}

// handlePetName сохраняет имя нового питомца
func handlePetName(_ context.Context, s *Session, input string) (nodeID, string, error) {
	if input == "" {
		return "", "", errors.New(msgEmptyInput)
	}
	s.Draft.NewPetName = input
	return nodeNewPetBreed, "", nil
}

// handlePetBreed сохраняет породу нового питомца
func handlePetBreed(_ context.Context, s *Session, input string) (nodeID, string, error) {
	if input == "" {
		return "", "", errors.New(msgEmptyInput)
	}
	s.Draft.NewPetBreed = input
	return nodeNewPetWeight, "", nil
}

// handlePetWeight разбирает вес нового питомца
func handlePetWeight(_ context.Context, s *Session, input string) (nodeID, string, error) {
	weight, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
	if err != nil || weight <= 0 {
		return "", "", errors.New(msgBadWeight)
	}
	s.Draft.NewPetWeight = weight
	return nodeNewPetConfirm, "", nil
}

// renderNewPetConfirm показывает сводку нового питомца
// Подтверждение создает питомца в PetService и возвращает к выбору услуги
func (e *Engine) renderNewPetConfirm(_ context.Context, s *Session) (string, []option, error) {
	message := fmt.Sprintf("Добавляем питомца: %s, %s, %.1f кг. Всё верно?",
		s.Draft.NewPetName, s.Draft.NewPetBreed, s.Draft.NewPetWeight)

	opts := []option{
		{
			label: msgYes,
			run: func(ctx context.Context, s *Session) (nodeID, string, error) {
				pet, err := e.petClient.CreatePet(ctx, &petservice.CreatePetRequest{
					OwnerID: s.UserID,
					Name:    s.Draft.NewPetName,
					Breed:   s.Draft.NewPetBreed,
					Weight:  s.Draft.NewPetWeight,
				})
				if err != nil {
					return "", "", fmt.Errorf("failed to create pet: %v", err)
				}
				e.logger.Info("Flow: session %s created pet id=%d", s.ID, pet.ID)
				s.Draft.PetID = pet.ID
				s.Draft.PetName = pet.Name
				s.Draft.NewPetName = ""
				s.Draft.NewPetBreed = ""
				s.Draft.NewPetWeight = 0
				return nodeSelectService, msgPetCreated, nil
			},
		},
		{
			label: msgNo,
			run: func(_ context.Context, s *Session) (nodeID, string, error) {
				s.Draft.NewPetName = ""
				s.Draft.NewPetBreed = ""
				s.Draft.NewPetWeight = 0
				return nodeSelectPet, msgAppointmentAbort, nil
			},
		},
	}

	return message, opts, nil
}

// renderSelectService предлагает активные услуги каталога
func (e *Engine) renderSelectService(ctx context.Context, s *Session) (string, []option, error) {
	services, err := e.catalogClient.ListServices(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list services: %v", err)
	}

	opts := make([]option, 0, len(services)+1)
	for _, svc := range services {
		svc := svc
		if !svc.Active {
			continue
		}
		opts = append(opts, option{
			label: fmt.Sprintf("%s — %.0f руб., %d мин", svc.Name, svc.Price, svc.DurationMinutes),
			run: func(_ context.Context, s *Session) (nodeID, string, error) {
				s.Draft.ServiceID = svc.ID
				s.Draft.ServiceName = svc.Name
				s.Draft.ServicePrice = svc.Price
				s.Draft.DurationMinutes = svc.DurationMinutes
				return nodeSelectTime, "", nil
			},
		})
	}
	opts = append(opts, cancelOption())

	if len(opts) == 1 {
		return msgNoServices, opts, nil
	}
	return msgSelectService, opts, nil
}

// handleTime разбирает желаемое время записи
func handleTime(_ context.Context, s *Session, input string) (nodeID, string, error) {
	start, err := time.Parse(domain.DateTimeFormat, input)
	if err != nil {
		return "", "", errors.New(msgBadTimeFormat)
	}
	s.Draft.StartTime = start
	return nodeConfirm, "", nil
}

// renderConfirm показывает сводку брони
// Подтверждение - единственная точка создания записи за весь диалог.
// Конфликт слота возвращает к вводу времени, черновик сохраняется
func (e *Engine) renderConfirm(_ context.Context, s *Session) (string, []option, error) {
	end := s.Draft.StartTime.Add(time.Duration(s.Draft.DurationMinutes) * time.Minute)
	message := fmt.Sprintf(
		"Проверьте запись:\nПитомец: %s\nУслуга: %s — %.0f руб.\nВремя: %s — %s",
		s.Draft.PetName,
		s.Draft.ServiceName,
		s.Draft.ServicePrice,
		s.Draft.StartTime.Format(domain.DateTimeFormat),
		end.Format(domain.TimeFormat),
	)

	opts := []option{
		{
			label: msgConfirm,
			run:   e.commitDraft,
		},
		{
			label: msgChangeTime,
			run: func(_ context.Context, _ *Session) (nodeID, string, error) {
				return nodeSelectTime, "", nil
			},
		},
		cancelOption(),
	}

	return message, opts, nil
}

// commitDraft создает запись из черновика сессии
func (e *Engine) commitDraft(ctx context.Context, s *Session) (nodeID, string, error) {
	resp, err := e.creator.Execute(ctx, &create_appointment.Request{
		ClientID:  s.UserID,
		PetID:     s.Draft.PetID,
		ServiceID: s.Draft.ServiceID,
		StartTime: s.Draft.StartTime,
	})
	if err != nil {
		// Исправимые отказы возвращают к вводу времени, черновик цел
		switch {
		case errors.Is(err, create_appointment.ErrSlotConflict):
			e.logger.Info("Flow: session %s hit slot conflict, returning to time input", s.ID)
			return nodeSelectTime, msgSlotTaken, nil
		case errors.Is(err, create_appointment.ErrInvalidDate):
			return nodeSelectTime, msgTimeInPast, nil
		case errors.Is(err, create_appointment.ErrClosedDay):
			return nodeSelectTime, msgClosedDay, nil
		case errors.Is(err, create_appointment.ErrOutsideWorkingHours):
			return nodeSelectTime, msgOutsideHours, nil
		case errors.Is(err, create_appointment.ErrPetNotOwned):
			return nodeSelectPet, msgPetNotOwned, nil
		case errors.Is(err, create_appointment.ErrServiceNotFound):
			return nodeSelectService, msgServiceGone, nil
		}
		return "", "", fmt.Errorf("failed to create appointment: %v", err)
	}

	e.logger.Info("Flow: session %s created appointment id=%d", s.ID, resp.ID)
	preamble := fmt.Sprintf("Запись №%d создана: %s, %s.",
		resp.ID, resp.ServiceName, resp.StartTime.Format(domain.DateTimeFormat))
	return nodeDone, preamble, nil
}

// cancelOption вариант выхода из диалога без создания записи
func cancelOption() option {
	return option{
		label: msgCancel,
		run: func(_ context.Context, _ *Session) (nodeID, string, error) {
			return nodeCancelled, "", nil
		},
	}
}
