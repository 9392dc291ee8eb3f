package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

// memoryState is everything the in-memory store owns. It lives exactly as
// long as the MemoryStore that holds it.
type memoryState struct {
	nextID map[string]int

	users            map[int]models.User
	settings         map[int]models.Settings // keyed by user ID
	intakes          map[int]models.WaterIntake
	reminderSettings map[int]models.ReminderSettings // keyed by user ID
	streaks          map[int]models.Streak           // keyed by user ID
	achievements     map[int]models.Achievement
	messages         map[int]models.ReminderMessage
	tips             map[int]models.HydrationTip
}

// MemoryStore keeps all entities in maps. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func newMemoryState() *memoryState {
	return &memoryState{
		nextID:           make(map[string]int),
		users:            make(map[int]models.User),
		settings:         make(map[int]models.Settings),
		intakes:          make(map[int]models.WaterIntake),
		reminderSettings: make(map[int]models.ReminderSettings),
		streaks:          make(map[int]models.Streak),
		achievements:     make(map[int]models.Achievement),
		messages:         make(map[int]models.ReminderMessage),
		tips:             make(map[int]models.HydrationTip),
	}
}

func (s *memoryState) next(table string) int {
	s.nextID[table]++
	return s.nextID[table]
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Stats(ctx context.Context) (models.StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.StoreStats{
		Users:            int64(len(m.state.users)),
		WaterIntakes:     int64(len(m.state.intakes)),
		ReminderMessages: int64(len(m.state.messages)),
		HydrationTips:    int64(len(m.state.tips)),
	}, nil
}

// Close drops all state.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = newMemoryState()
	return nil
}

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.state.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrConflict
		}
	}
	user.ID = m.state.next("users")
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.state.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.state.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.state.users {
		if strings.EqualFold(user.Username, username) {
			found := user
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetSettings(ctx context.Context, userID int) (*models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	settings, ok := m.state.settings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &settings, nil
}

func (m *MemoryStore) CreateSettings(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.state.settings[settings.UserID]; exists {
		return ErrConflict
	}
	settings.ID = m.state.next("settings")
	m.state.settings[settings.UserID] = *settings
	return nil
}

func (m *MemoryStore) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.state.settings[settings.UserID]
	if !ok || existing.ID != settings.ID {
		return ErrNotFound
	}
	m.state.settings[settings.UserID] = *settings
	return nil
}

func (m *MemoryStore) AddWaterIntake(ctx context.Context, intake *models.WaterIntake) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	intake.ID = m.state.next("water_intake")
	m.state.intakes[intake.ID] = *intake
	return nil
}

func (m *MemoryStore) ListWaterIntake(ctx context.Context, userID int, from, to time.Time) ([]models.WaterIntake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WaterIntake, 0)
	for _, intake := range m.state.intakes {
		if intake.UserID != userID {
			continue
		}
		if intake.Timestamp.Before(from) || !intake.Timestamp.Before(to) {
			continue
		}
		out = append(out, intake)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (m *MemoryStore) CountWaterIntake(ctx context.Context, userID int) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, intake := range m.state.intakes {
		if intake.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) DeleteWaterIntakeForUser(ctx context.Context, userID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, intake := range m.state.intakes {
		if intake.UserID == userID {
			delete(m.state.intakes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemoryStore) GetReminderSettings(ctx context.Context, userID int) (*models.ReminderSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	settings, ok := m.state.reminderSettings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &settings, nil
}

func (m *MemoryStore) CreateReminderSettings(ctx context.Context, settings *models.ReminderSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.state.reminderSettings[settings.UserID]; exists {
		return ErrConflict
	}
	settings.ID = m.state.next("reminder_settings")
	m.state.reminderSettings[settings.UserID] = *settings
	return nil
}

func (m *MemoryStore) UpdateReminderSettings(ctx context.Context, settings *models.ReminderSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.state.reminderSettings[settings.UserID]
	if !ok || existing.ID != settings.ID {
		return ErrNotFound
	}
	m.state.reminderSettings[settings.UserID] = *settings
	return nil
}

func (m *MemoryStore) ListActiveReminderSettings(ctx context.Context) ([]models.ReminderSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ReminderSettings, 0)
	for _, settings := range m.state.reminderSettings {
		if settings.Active {
			out = append(out, settings)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *MemoryStore) GetStreak(ctx context.Context, userID int) (*models.Streak, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	streak, ok := m.state.streaks[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &streak, nil
}

func (m *MemoryStore) CreateStreak(ctx context.Context, streak *models.Streak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.state.streaks[streak.UserID]; exists {
		return ErrConflict
	}
	streak.ID = m.state.next("streaks")
	m.state.streaks[streak.UserID] = *streak
	return nil
}

func (m *MemoryStore) UpdateStreak(ctx context.Context, streak *models.Streak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.state.streaks[streak.UserID]
	if !ok || existing.ID != streak.ID {
		return ErrNotFound
	}
	if !existing.LastUpdated.IsZero() && streak.LastUpdated.Before(existing.LastUpdated) {
		return ErrNotFound
	}
	m.state.streaks[streak.UserID] = *streak
	return nil
}

func (m *MemoryStore) ListAchievements(ctx context.Context, userID int) ([]models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Achievement, 0)
	for _, achievement := range m.state.achievements {
		if achievement.UserID == userID {
			out = append(out, achievement)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetAchievement(ctx context.Context, id int) (*models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	achievement, ok := m.state.achievements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &achievement, nil
}

func (m *MemoryStore) CreateAchievement(ctx context.Context, achievement *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.state.achievements {
		if existing.UserID == achievement.UserID && existing.Name == achievement.Name {
			return ErrConflict
		}
	}
	achievement.ID = m.state.next("achievements")
	m.state.achievements[achievement.ID] = *achievement
	return nil
}

func (m *MemoryStore) UpdateAchievement(ctx context.Context, achievement *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.state.achievements[achievement.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Achieved {
		return nil
	}
	existing.Achieved = achievement.Achieved
	existing.AchievedDate = achievement.AchievedDate
	m.state.achievements[achievement.ID] = existing
	return nil
}

func (m *MemoryStore) ListReminderMessages(ctx context.Context, userID int) ([]models.ReminderMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ReminderMessage, 0)
	for _, message := range m.state.messages {
		if message.UserID == userID {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetReminderMessage(ctx context.Context, id int) (*models.ReminderMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	message, ok := m.state.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &message, nil
}

func (m *MemoryStore) CreateReminderMessage(ctx context.Context, message *models.ReminderMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	message.ID = m.state.next("reminder_messages")
	m.state.messages[message.ID] = *message
	return nil
}

func (m *MemoryStore) UpdateReminderMessage(ctx context.Context, message *models.ReminderMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.messages[message.ID]; !ok {
		return ErrNotFound
	}
	m.state.messages[message.ID] = *message
	return nil
}

func (m *MemoryStore) DeleteReminderMessage(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.messages[id]; !ok {
		return ErrNotFound
	}
	delete(m.state.messages, id)
	return nil
}

func (m *MemoryStore) ListHydrationTips(ctx context.Context, category string) ([]models.HydrationTip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.HydrationTip, 0)
	for _, tip := range m.state.tips {
		if category != "" && !strings.EqualFold(tip.Category, category) {
			continue
		}
		out = append(out, tip)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CreateHydrationTip(ctx context.Context, tip *models.HydrationTip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tip.ID = m.state.next("hydration_tips")
	m.state.tips[tip.ID] = *tip
	return nil
}
