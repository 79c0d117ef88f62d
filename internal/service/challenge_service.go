package service

import (
	"fmt"
	"go-mini-sites/internal/data"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Challenge is the goal set for one month.
type Challenge struct {
	Month string // lower case, used in URLs
	Title string // display name
	Text  string
}

var monthlyChallenges = []struct{ month, text string }{
	{"january", "Eat no meat for the entire month!"},
	{"february", "Walk for at least 20 minutes every day!"},
	{"march", "Learn Go for at least 20 minutes every day!"},
	{"april", "Practice your golf swing once a week."},
	{"may", "Go to the gym at least 4 times a week."},
	{"june", "Solve at least one algorithm puzzle a day."},
	{"july", "Read a book every day."},
	{"august", "Learn a new board game."},
	{"september", "Fix one thing around the house every week."},
	{"october", "Run a 5k."},
	{"november", "Study Linux."},
	{"december", "Learn a new programming language."},
}

// ChallengeServicer defines the interface the challenge handlers use.
type ChallengeServicer interface {
	Months() []Challenge
	ByName(month string) (Challenge, error)
	ByNumber(n int) (Challenge, error)
}

// ChallengeService serves the fixed table of monthly challenges.
type ChallengeService struct {
	challenges []Challenge
	byMonth    map[string]int
}

// NewChallengeService builds the month table in calendar order.
func NewChallengeService() *ChallengeService {
	title := cases.Title(language.English)
	s := &ChallengeService{
		challenges: make([]Challenge, len(monthlyChallenges)),
		byMonth:    make(map[string]int, len(monthlyChallenges)),
	}
	for i, mc := range monthlyChallenges {
		s.challenges[i] = Challenge{Month: mc.month, Title: title.String(mc.month), Text: mc.text}
		s.byMonth[mc.month] = i
	}
	return s
}

// Months returns every challenge in calendar order.
func (s *ChallengeService) Months() []Challenge {
	out := make([]Challenge, len(s.challenges))
	copy(out, s.challenges)
	return out
}

// ByName looks a challenge up by month name, ignoring case.
func (s *ChallengeService) ByName(month string) (Challenge, error) {
	i, ok := s.byMonth[strings.ToLower(month)]
	if !ok {
		return Challenge{}, fmt.Errorf("month %q: %w", month, data.ErrNotFound)
	}
	return s.challenges[i], nil
}

// ByNumber maps 1..12 to its challenge.
func (s *ChallengeService) ByNumber(n int) (Challenge, error) {
	if n < 1 || n > len(s.challenges) {
		return Challenge{}, fmt.Errorf("month number %d: %w", n, data.ErrNotFound)
	}
	return s.challenges[n-1], nil
}
