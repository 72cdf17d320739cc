package query

import (
	"context"
	"errors"
	"io"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// Тестовые дублёры инфраструктуры: справочник и хранилища в памяти.
// Поведение повторяет контракты доменных интерфейсов, включая
// применение жёстких фильтров на стороне справочника.

var errStoreDown = errors.New("store is down")

func quietLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelError, logger.FormatText)
}

type fakeDirectory struct {
	mentors []*mentor.Profile
	err     error
}

func (d *fakeDirectory) ListCandidates(_ context.Context, filter mentor.CandidateFilter) ([]*mentor.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := make([]*mentor.Profile, 0, len(d.mentors))
	for _, p := range d.mentors {
		if filter.Allows(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *fakeDirectory) GetByID(_ context.Context, id shared.MentorID) (*mentor.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, p := range d.mentors {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrMentorNotFound
}

type fakeParticipantStore struct {
	profiles map[shared.ParticipantID]*participant.Profile
	err      error
}

func (s *fakeParticipantStore) Get(_ context.Context, id shared.ParticipantID) (*participant.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, shared.ErrParticipantNotFound
	}
	return p, nil
}

type fakeProjectStore struct {
	projects map[shared.ParticipantID]*participant.Project
	err      error
}

func (s *fakeProjectStore) GetByParticipant(_ context.Context, id shared.ParticipantID) (*participant.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Отсутствие проекта - нормальное состояние, не ошибка.
	return s.projects[id], nil
}
