package meeting

import (
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"lanspeech/models"
	"lanspeech/utils"

	"go.uber.org/zap"
)

const meetingIDShape = `[a-z]{3}-[a-z]{4}-[a-z]{3}`

// MeetingService provisions meeting artifacts for confirmed bookings.
type MeetingService interface {
	CreateMeeting(req models.MeetingCreationRequest) models.MeetingDetails
	GetMeeting(meetingID string) *models.MeetingDetails
	UpdateMeeting(meetingID string, updates models.MeetingDetails) *models.MeetingDetails
	CancelMeeting(meetingID string) bool
	GenerateCalendarInvite(meeting models.MeetingDetails) string
	IsValidMeetURL(u string) bool
	ExtractMeetingID(u string) string
}

// DefaultMeetingService implements MeetingService. The rand source is injected
// so meeting IDs are reproducible under test. URL patterns are derived from
// the configured host, so validation accepts exactly what CreateMeeting
// produces.
type DefaultMeetingService struct {
	Host string // e.g. "meet.google.com"
	Rand *rand.Rand

	urlPattern *regexp.Regexp
	idPattern  *regexp.Regexp
}

func NewMeetingService(host string, rng *rand.Rand) *DefaultMeetingService {
	if host == "" {
		host = "meet.google.com"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	quoted := regexp.QuoteMeta(host)
	return &DefaultMeetingService{
		Host:       host,
		Rand:       rng,
		urlPattern: regexp.MustCompile(`^https://` + quoted + `/` + meetingIDShape + `$`),
		idPattern:  regexp.MustCompile(quoted + `/(` + meetingIDShape + `)`),
	}
}

// CreateMeeting synthesizes a meeting record for a confirmed booking.
// It has no external dependency and always succeeds.
func (m *DefaultMeetingService) CreateMeeting(req models.MeetingCreationRequest) models.MeetingDetails {
	meetingID := m.generateMeetingID()
	meeting := models.MeetingDetails{
		MeetingID:    meetingID,
		MeetingURL:   "https://" + m.Host + "/" + meetingID,
		StartTime:    req.StartTime,
		EndTime:      req.StartTime.Add(time.Duration(req.Duration) * time.Minute),
		Participants: req.AttendeeEmails,
		HostEmail:    req.HostEmail,
		Title:        req.Title,
		Description:  req.Description,
	}

	utils.GetLogger().Info("meeting created",
		zap.String("meetingID", meeting.MeetingID),
		zap.Time("start", meeting.StartTime))
	return meeting
}

// generateMeetingID produces the xxx-xxxx-xxx shape: three lowercase segments
// of lengths 3, 4 and 3.
func (m *DefaultMeetingService) generateMeetingID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz"
	lengths := []int{3, 4, 3}
	segments := make([]string, 0, len(lengths))
	for _, n := range lengths {
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteByte(chars[m.Rand.Intn(len(chars))])
		}
		segments = append(segments, sb.String())
	}
	return strings.Join(segments, "-")
}

// GetMeeting looks up a meeting by ID. Backing storage is the persistence
// layer's concern; without it there is nothing to find.
func (m *DefaultMeetingService) GetMeeting(meetingID string) *models.MeetingDetails {
	return nil
}

// UpdateMeeting would propagate changes to the calendar provider.
func (m *DefaultMeetingService) UpdateMeeting(meetingID string, updates models.MeetingDetails) *models.MeetingDetails {
	utils.GetLogger().Info("meeting update requested", zap.String("meetingID", meetingID))
	return nil
}

// CancelMeeting would cancel the calendar event with the provider.
func (m *DefaultMeetingService) CancelMeeting(meetingID string) bool {
	utils.GetLogger().Info("meeting cancellation requested", zap.String("meetingID", meetingID))
	return true
}

// GenerateCalendarInvite builds the calendar deep link for a meeting. The
// parameter names match the target provider's render template and must not
// change.
func (m *DefaultMeetingService) GenerateCalendarInvite(meeting models.MeetingDetails) string {
	start := calendarTimestamp(meeting.StartTime)
	end := calendarTimestamp(meeting.EndTime)

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", meeting.Title)
	params.Set("dates", start+"/"+end)
	params.Set("details", meeting.Description+"\n\nJoin the meeting: "+meeting.MeetingURL)
	params.Set("location", meeting.MeetingURL)

	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

// calendarTimestamp renders a UTC time as basic ISO8601 with punctuation
// stripped, e.g. 20250120T140000Z.
func calendarTimestamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// IsValidMeetURL reports whether u is exactly the https meeting URL shape for
// the configured host.
func (m *DefaultMeetingService) IsValidMeetURL(u string) bool {
	return m.urlPattern.MatchString(u)
}

// ExtractMeetingID pulls the meeting ID out of a meeting URL, or returns ""
// for a non-matching URL.
func (m *DefaultMeetingService) ExtractMeetingID(u string) string {
	match := m.idPattern.FindStringSubmatch(u)
	if match == nil {
		return ""
	}
	return match[1]
}
