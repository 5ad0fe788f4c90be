package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/validation"
)

// SeedService заводит первого администратора и генерирует демо-данные.
type SeedService struct {
	profiles   repository.ProfileRepository
	complaints repository.ComplaintRepository
	cache      repository.SnapshotCache
	now        func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeedService создаёт сервис. cache может быть nil.
func NewSeedService(profiles repository.ProfileRepository, complaints repository.ComplaintRepository, cache repository.SnapshotCache) *SeedService {
	return &SeedService{
		profiles:   profiles,
		complaints: complaints,
		cache:      cache,
		now:        time.Now,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AdminSeed учётные данные первого администратора.
type AdminSeed struct {
	Email    string
	Password string
	FullName string
}

// EnsureAdmin создаёт администратора, если профиля с таким email ещё нет.
// Возвращает true, если профиль был создан.
func (s *SeedService) EnsureAdmin(ctx context.Context, in AdminSeed) (*entity.Profile, bool, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, false, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	existing, err := s.profiles.FindByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, false, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("seed service: не удалось захешировать пароль: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	local, _, _ := strings.Cut(email, "@")
	now := s.now()
	profile := &entity.Profile{
		ID:           uuid.New(),
		Username:     local,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Role:         valueobject.RoleAdmin,
		Status:       valueobject.UserStatusActive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, false, err
	}

	s.invalidate(repository.ProfilesSnapshotPrefix)
	return profile, true, nil
}

// SeedResult сколько записей создано.
type SeedResult struct {
	Profiles   int `json:"profiles"`
	Complaints int `json:"complaints"`
}

// SeedDemo генерирует жителей и их обращения за последние полгода.
func (s *SeedService) SeedDemo(ctx context.Context, numProfiles, numComplaints int) (*SeedResult, error) {
	firstNames := []string{"Anna", "Ivan", "Maria", "Sergey", "Olga", "Dmitry", "Elena", "Pavel", "Irina", "Nikita"}
	lastNames := []string{"Ivanova", "Petrov", "Smirnova", "Kozlov", "Sokolova", "Popov", "Novikova", "Morozov"}
	domains := []string{"gmail.com", "yandex.ru", "mail.ru", "outlook.com"}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &SeedResult{}
	residents := make([]*entity.Profile, 0, numProfiles)
	now := s.now()

	for i := 0; i < numProfiles; i++ {
		first := firstNames[s.rnd.Intn(len(firstNames))]
		last := lastNames[s.rnd.Intn(len(lastNames))]
		suffix := s.rnd.Intn(10000)

		status := valueobject.UserStatusActive
		if s.rnd.Intn(10) == 0 {
			status = valueobject.UserStatusBlocked
		}

		createdAt := now.Add(-time.Duration(s.rnd.Intn(180*24)) * time.Hour)
		profile := &entity.Profile{
			ID:        uuid.New(),
			Username:  fmt.Sprintf("%s_%s_%d", strings.ToLower(first), strings.ToLower(last), suffix),
			FullName:  first + " " + last,
			Email:     fmt.Sprintf("%s.%s.%d@%s", strings.ToLower(first), strings.ToLower(last), suffix, domains[s.rnd.Intn(len(domains))]),
			Role:      valueobject.RoleUser,
			Status:    status,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return res, fmt.Errorf("seed service: не удалось создать профиль: %w", err)
		}
		residents = append(residents, profile)
		res.Profiles++
	}

	for i := 0; i < numComplaints; i++ {
		sample := demoComplaints[s.rnd.Intn(len(demoComplaints))]
		in := entity.NewComplaintInput{
			Title:       sample.title,
			Description: sample.description,
			Category:    sample.category,
			Priority:    string(demoPriorities[s.rnd.Intn(len(demoPriorities))]),
		}
		if len(residents) > 0 && s.rnd.Intn(5) != 0 {
			r := residents[s.rnd.Intn(len(residents))]
			in.UserName = r.FullName
			in.UserEmail = r.Email
			in.CreatedBy = r.ID.String()
		}

		createdAt := now.Add(-time.Duration(s.rnd.Intn(180*24)) * time.Hour)
		complaint, err := entity.NewComplaint(in, createdAt)
		if err != nil {
			return res, err
		}

		switch s.rnd.Intn(3) {
		case 1:
			_ = complaint.ChangeStatus(valueobject.ComplaintStatusInProgress, createdAt.Add(6*time.Hour))
		case 2:
			_ = complaint.ChangeStatus(valueobject.ComplaintStatusResolved, createdAt.Add(time.Duration(s.rnd.Intn(72)+1)*time.Hour))
		}

		if err := s.complaints.Create(ctx, complaint); err != nil {
			return res, fmt.Errorf("seed service: не удалось создать обращение: %w", err)
		}
		res.Complaints++
	}

	s.invalidate(repository.ProfilesSnapshotPrefix)
	s.invalidate(repository.ComplaintsSnapshotPrefix)
	return res, nil
}

func (s *SeedService) invalidate(prefix string) {
	if s.cache != nil {
		s.cache.InvalidateByPrefix(prefix)
	}
}

var demoPriorities = []valueobject.Priority{valueobject.PriorityLow, valueobject.PriorityMedium, valueobject.PriorityHigh}

var demoComplaints = []struct {
	title       string
	description string
	category    string
}{
	{"Pothole on Main Street", "Deep pothole near the bus stop, cars swerve into the next lane.", "Road"},
	{"Broken traffic light", "The light at the crossing has been blinking yellow since Monday.", "Road"},
	{"No water supply", "Whole block has had no running water for two days.", "Water"},
	{"Leaking pipe", "Water is leaking from a pipe under the pavement.", "Water"},
	{"Street lights out", "Five street lights in a row are not working, the park is dark at night.", "Electricity"},
	{"Exposed wires", "Electric wires hang from a pole next to the playground.", "Electricity"},
	{"Blocked drain", "Storm drain is blocked, the street floods after every rain.", "Sanitation"},
	{"Overflowing sewer", "Sewage is overflowing onto the footpath.", "Sanitation"},
	{"Garbage not collected", "Bins have not been emptied for a week.", "Garbage"},
	{"Illegal dumping", "Construction waste dumped behind the school.", "Garbage"},
	{"Fallen tree", "A tree fell on the footpath after the storm.", ""},
}
