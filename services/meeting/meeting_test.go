package meeting

import (
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"lanspeech/models"
)

func testMeetingService(seed int64) *DefaultMeetingService {
	return NewMeetingService("meet.google.com", rand.New(rand.NewSource(seed)))
}

func TestGenerateMeetingID_Shape(t *testing.T) {
	svc := testMeetingService(1)
	shape := regexp.MustCompile(`^[a-z]{3}-[a-z]{4}-[a-z]{3}$`)
	for i := 0; i < 20; i++ {
		id := svc.generateMeetingID()
		if !shape.MatchString(id) {
			t.Fatalf("meeting id %q does not match xxx-xxxx-xxx", id)
		}
	}
}

func TestCreateMeeting(t *testing.T) {
	svc := testMeetingService(2)
	start := time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC)

	meeting := svc.CreateMeeting(models.MeetingCreationRequest{
		Title:          "Speech Therapy Session",
		Description:    "Weekly practice",
		StartTime:      start,
		Duration:       60,
		AttendeeEmails: []string{"client@example.com"},
		HostEmail:      "therapist@example.com",
	})

	if meeting.MeetingID == "" {
		t.Fatal("meeting id is empty")
	}
	wantURL := "https://meet.google.com/" + meeting.MeetingID
	if meeting.MeetingURL != wantURL {
		t.Fatalf("meeting url = %q, want %q", meeting.MeetingURL, wantURL)
	}
	if !svc.IsValidMeetURL(meeting.MeetingURL) {
		t.Fatalf("created meeting url %q fails validation", meeting.MeetingURL)
	}
	if !meeting.EndTime.Equal(start.Add(time.Hour)) {
		t.Fatalf("end time = %v, want start + 60m", meeting.EndTime)
	}
	if len(meeting.Participants) != 1 || meeting.Participants[0] != "client@example.com" {
		t.Fatalf("participants = %v", meeting.Participants)
	}
}

func TestIsValidMeetURL(t *testing.T) {
	svc := testMeetingService(3)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://meet.google.com/abc-defg-hij", true},
		{"https://meet.google.com/abcdefg-hij", false},
		{"http://meet.google.com/abc-defg-hij", false},
		{"https://meet.google.com/ABC-DEFG-HIJ", false},
		{"https://meet.google.com/abc-defg-hij/extra", false},
		{"https://example.com/abc-defg-hij", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := svc.IsValidMeetURL(tc.url); got != tc.want {
			t.Errorf("IsValidMeetURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestCustomHost_ValidationMatchesCreation(t *testing.T) {
	svc := NewMeetingService("meet.example.org", rand.New(rand.NewSource(6)))

	meeting := svc.CreateMeeting(models.MeetingCreationRequest{
		Title:     "Speech Therapy Session",
		StartTime: time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC),
		Duration:  60,
	})
	if !svc.IsValidMeetURL(meeting.MeetingURL) {
		t.Fatalf("custom-host url %q fails its own validation", meeting.MeetingURL)
	}
	if got := svc.ExtractMeetingID(meeting.MeetingURL); got != meeting.MeetingID {
		t.Fatalf("ExtractMeetingID = %q, want %q", got, meeting.MeetingID)
	}
	if svc.IsValidMeetURL("https://meet.google.com/abc-defg-hij") {
		t.Fatal("default-host url accepted by a custom-host service")
	}
}

func TestExtractMeetingID(t *testing.T) {
	svc := testMeetingService(4)

	if got := svc.ExtractMeetingID("https://meet.google.com/xyz-uvwx-rst"); got != "xyz-uvwx-rst" {
		t.Fatalf("ExtractMeetingID = %q, want xyz-uvwx-rst", got)
	}
	if got := svc.ExtractMeetingID("https://example.com/nothing-here"); got != "" {
		t.Fatalf("ExtractMeetingID on non-meet url = %q, want \"\"", got)
	}
}

func TestGenerateCalendarInvite(t *testing.T) {
	svc := testMeetingService(5)

	meeting := models.MeetingDetails{
		MeetingID:   "abc-defg-hij",
		MeetingURL:  "https://meet.google.com/abc-defg-hij",
		Title:       "Speech Therapy Session",
		Description: "Weekly practice",
		StartTime:   time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 1, 20, 15, 0, 0, 0, time.UTC),
	}

	invite := svc.GenerateCalendarInvite(meeting)
	if !strings.HasPrefix(invite, "https://calendar.google.com/calendar/render?") {
		t.Fatalf("invite has wrong base: %q", invite)
	}

	parsed, err := url.Parse(invite)
	if err != nil {
		t.Fatalf("invite does not parse: %v", err)
	}
	q := parsed.Query()

	if q.Get("action") != "TEMPLATE" {
		t.Errorf("action = %q", q.Get("action"))
	}
	if q.Get("text") != meeting.Title {
		t.Errorf("text = %q", q.Get("text"))
	}
	if q.Get("dates") != "20250120T140000Z/20250120T150000Z" {
		t.Errorf("dates = %q", q.Get("dates"))
	}
	if q.Get("location") != meeting.MeetingURL {
		t.Errorf("location = %q", q.Get("location"))
	}
	if !strings.Contains(q.Get("details"), meeting.MeetingURL) {
		t.Errorf("details %q does not mention the meeting url", q.Get("details"))
	}
}
