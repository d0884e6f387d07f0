package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"prompt-backend/internal/storage"
)

// DailyStats summarises one UTC day of prompt traffic.
type DailyStats struct {
	Date              string               `json:"date"`
	TotalPrompts      int                  `json:"total_prompts"`
	UniqueUsers       int                  `json:"unique_users"`
	ResponsesByText   map[string]int       `json:"responses_by_text"`
	UserStats         map[string]UserStats `json:"user_stats"`
	AveragePromptSize float64              `json:"average_prompt_size"`
}

type UserStats struct {
	Username    string `json:"username"`
	Prompts     int    `json:"prompts"`
	PromptChars int    `json:"prompt_chars"`
}

// AnalyzeDailyLogs aggregates the events that fall on targetDate's calendar day.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:            startOfDay.Format("2006-01-02"),
		ResponsesByText: make(map[string]int),
		UserStats:       make(map[string]UserStats),
	}

	totalChars := 0
	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		if event.Username == "" {
			continue
		}

		stats.TotalPrompts++
		stats.ResponsesByText[event.Response]++
		chars := len([]rune(event.Prompt))
		totalChars += chars

		us, ok := stats.UserStats[event.Username]
		if !ok {
			us = UserStats{Username: event.Username}
		}
		us.Prompts++
		us.PromptChars += chars
		stats.UserStats[event.Username] = us
	}

	stats.UniqueUsers = len(stats.UserStats)
	if stats.TotalPrompts > 0 {
		stats.AveragePromptSize = float64(totalChars) / float64(stats.TotalPrompts)
	}
	return stats
}

// GenerateReportSummary renders a plain text report with users and responses
// sorted by descending count.
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prompt usage for %s:\n", ds.Date)
	fmt.Fprintf(&b, "- Total prompts: %d\n", ds.TotalPrompts)
	fmt.Fprintf(&b, "- Unique users: %d\n", ds.UniqueUsers)
	fmt.Fprintf(&b, "- Average prompt length: %.1f chars\n", ds.AveragePromptSize)

	if len(ds.UserStats) > 0 {
		users := make([]UserStats, 0, len(ds.UserStats))
		for _, us := range ds.UserStats {
			users = append(users, us)
		}
		sort.Slice(users, func(i, j int) bool {
			if users[i].Prompts != users[j].Prompts {
				return users[i].Prompts > users[j].Prompts
			}
			return users[i].Username < users[j].Username
		})
		b.WriteString("\nUsers:\n")
		for _, us := range users {
			fmt.Fprintf(&b, "- %s: %d prompts\n", us.Username, us.Prompts)
		}
	}

	if len(ds.ResponsesByText) > 0 {
		type kv struct {
			text  string
			count int
		}
		responses := make([]kv, 0, len(ds.ResponsesByText))
		for text, n := range ds.ResponsesByText {
			responses = append(responses, kv{text, n})
		}
		sort.Slice(responses, func(i, j int) bool {
			if responses[i].count != responses[j].count {
				return responses[i].count > responses[j].count
			}
			return responses[i].text < responses[j].text
		})
		b.WriteString("\nResponses:\n")
		for _, r := range responses {
			fmt.Fprintf(&b, "- %q: %d\n", r.text, r.count)
		}
	}
	return b.String()
}

func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
