package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// The settings table is a generic key/value store (branding, toggles,
// schedule configuration). Typed Load/Save functions below map the
// notification and digest configuration onto it so handlers and the
// scheduler only ever see structs.

func GetSetting(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting upserts a single key. A single-row upsert is the only
// atomicity the store offers.
func SetSetting(db *sql.DB, key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := db.Exec(query, key, value)
	return err
}

func GetAllSettings(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// --- Typed notification configuration ---

const (
	keyReminderEnabled   = "notifications.reminder.enabled"
	keyReminderDay       = "notifications.reminder.day"
	keyReminderTime      = "notifications.reminder.time"
	keyReminderLookAhead = "notifications.reminder.look_ahead_days"
	keyReminderLastSent  = "notifications.reminder.last_sent"
	keyReminderEndpoints = "notifications.reminder.endpoints"

	keyDigestEnabled   = "notifications.digest.enabled"
	keyDigestFrequency = "notifications.digest.frequency"
	keyDigestDay       = "notifications.digest.day"
	keyDigestTime      = "notifications.digest.time"
	keyDigestLastSent  = "notifications.digest.last_sent"
	keyDigestEndpoints = "notifications.digest.endpoints"
)

func LoadNotificationSettings(db *sql.DB) (*models.NotificationSettings, error) {
	all, err := GetAllSettings(db)
	if err != nil {
		return nil, err
	}

	s := &models.NotificationSettings{
		Enabled:       all[keyReminderEnabled] == "true",
		ReminderDay:   valueOr(all, keyReminderDay, "3"),
		ReminderTime:  valueOr(all, keyReminderTime, "09:00"),
		LookAheadDays: intValueOr(all, keyReminderLookAhead, 7),
		Endpoints:     splitEndpoints(all[keyReminderEndpoints]),
	}
	s.LastReminderSent = parseStoredTime(all[keyReminderLastSent])
	return s, nil
}

func SaveNotificationSettings(db *sql.DB, s *models.NotificationSettings) error {
	pairs := map[string]string{
		keyReminderEnabled:   strconv.FormatBool(s.Enabled),
		keyReminderDay:       s.ReminderDay,
		keyReminderTime:      s.ReminderTime,
		keyReminderLookAhead: strconv.Itoa(s.LookAheadDays),
		keyReminderEndpoints: strings.Join(s.Endpoints, ","),
	}
	for k, v := range pairs {
		if err := SetSetting(db, k, v); err != nil {
			return err
		}
	}
	return nil
}

// SetReminderLastSent persists the reminder's last-sent timestamp. Kept
// separate from SaveNotificationSettings so a dispatch result updates
// exactly one key.
func SetReminderLastSent(db *sql.DB, at time.Time) error {
	return SetSetting(db, keyReminderLastSent, at.UTC().Format(time.RFC3339))
}

func LoadDigestSettings(db *sql.DB) (*models.DigestSettings, error) {
	all, err := GetAllSettings(db)
	if err != nil {
		return nil, err
	}

	s := &models.DigestSettings{
		Enabled:   all[keyDigestEnabled] == "true",
		Frequency: models.DigestFrequency(valueOr(all, keyDigestFrequency, string(models.DigestWeekly))),
		Day:       valueOr(all, keyDigestDay, "0"),
		Time:      valueOr(all, keyDigestTime, "18:00"),
		Endpoints: splitEndpoints(all[keyDigestEndpoints]),
	}
	s.LastDigestSent = parseStoredTime(all[keyDigestLastSent])
	return s, nil
}

func SaveDigestSettings(db *sql.DB, s *models.DigestSettings) error {
	pairs := map[string]string{
		keyDigestEnabled:   strconv.FormatBool(s.Enabled),
		keyDigestFrequency: string(s.Frequency),
		keyDigestDay:       s.Day,
		keyDigestTime:      s.Time,
		keyDigestEndpoints: strings.Join(s.Endpoints, ","),
	}
	for k, v := range pairs {
		if err := SetSetting(db, k, v); err != nil {
			return err
		}
	}
	return nil
}

func SetDigestLastSent(db *sql.DB, at time.Time) error {
	return SetSetting(db, keyDigestLastSent, at.UTC().Format(time.RFC3339))
}

func valueOr(all map[string]string, key, fallback string) string {
	if v, ok := all[key]; ok && v != "" {
		return v
	}
	return fallback
}

func intValueOr(all map[string]string, key string, fallback int) int {
	if v, ok := all[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseStoredTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

func splitEndpoints(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	endpoints := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			endpoints = append(endpoints, p)
		}
	}
	return endpoints
}
