package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/st/internal/errors"
	"github.com/julianstephens/st/internal/models"
)

// Wednesday morning
var now = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)

type fakeChat struct {
	calls      []string
	failOn     map[string]error
	lastText   string
	lastEmoji  string
	lastExpiry int64
	snooze     int64
}

func (f *fakeChat) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeChat) SetProfile(_ context.Context, text, emoji string, expiresAt int64) error {
	f.lastText, f.lastEmoji, f.lastExpiry = text, emoji, expiresAt
	return f.record("SetProfile")
}

func (f *fakeChat) ClearProfile(context.Context) error { return f.record("ClearProfile") }

func (f *fakeChat) SetSnooze(_ context.Context, minutes int64) error {
	f.snooze = minutes
	return f.record("SetSnooze")
}

func (f *fakeChat) EndSnooze(context.Context) error { return f.record("EndSnooze") }

type fakeHost struct {
	calls   []string
	err     error
	message string
	expires string
	scope   string
}

func (f *fakeHost) SetLimitedAvailability(_ context.Context, message, _, expiresAt, scope string) error {
	f.calls = append(f.calls, "SetLimitedAvailability")
	f.message, f.expires, f.scope = message, expiresAt, scope
	return f.err
}

func (f *fakeHost) ClearStatus(context.Context) error {
	f.calls = append(f.calls, "ClearStatus")
	return f.err
}

type fakeTracker struct {
	ooo   bool
	err   error
	reads int
}

func (f *fakeTracker) IsOutOfOffice(context.Context) (bool, error) {
	f.reads++
	return f.ooo, f.err
}

type fixture struct {
	chat    *fakeChat
	host    *fakeHost
	tracker *fakeTracker
}

func newFixture() fixture {
	return fixture{chat: &fakeChat{failOn: map[string]error{}}, host: &fakeHost{}, tracker: &fakeTracker{}}
}

func (f fixture) services() Services {
	return Services{Chat: f.chat, Host: f.host, Tracker: f.tracker}
}

func run(t *testing.T, f fixture, keyword, date, tm, scope string) (Plan, models.DispatchReport) {
	t.Helper()
	req, err := NewRequest(keyword, date, tm, now)
	if err != nil {
		t.Fatalf("NewRequest(%q, %q, %q) error = %v", keyword, date, tm, err)
	}
	plan := BuildPlan(req, now, scope)
	return plan, Execute(context.Background(), plan, f.services())
}

func only(t *testing.T, report models.DispatchReport, service string) models.Outcome {
	t.Helper()
	got := report.For(service)
	if len(got) != 1 {
		t.Fatalf("%s outcomes = %+v, want exactly one", service, got)
	}
	return got[0]
}

func TestMeetWithoutArguments(t *testing.T) {
	f := newFixture()
	_, report := run(t, f, "meet", "", "", "")

	if f.chat.lastText != "In a meeting" || f.chat.lastEmoji != ":calendar:" || f.chat.lastExpiry != 0 {
		t.Errorf("chat profile = %q %q %d", f.chat.lastText, f.chat.lastEmoji, f.chat.lastExpiry)
	}
	if strings.Join(f.chat.calls, ",") != "SetProfile" {
		t.Errorf("chat calls = %v, want only SetProfile", f.chat.calls)
	}
	if got := only(t, report, "Slack"); got.Kind != models.OutcomeSuccess || got.Message != "In a meeting :calendar:" {
		t.Errorf("Slack outcome = %+v", got)
	}
	if got := only(t, report, "GitHub"); got.Kind != models.OutcomeSkipped || got.Message != "No change" {
		t.Errorf("GitHub outcome = %+v", got)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeSkipped || got.Message != "No change" {
		t.Errorf("Asana outcome = %+v", got)
	}
	if len(f.host.calls) != 0 || f.tracker.reads != 0 {
		t.Errorf("host calls = %v, tracker reads = %d, want none", f.host.calls, f.tracker.reads)
	}
}

func TestVacationUntilFriday(t *testing.T) {
	f := newFixture()
	plan, report := run(t, f, "vacation", "friday", "", "O_kgDOABC")

	friday := time.Date(2026, time.October, 16, 7, 0, 0, 0, time.Local)
	wantMinutes := int64(friday.Sub(now) / time.Minute)
	if f.chat.snooze != wantMinutes {
		t.Errorf("snooze = %d, want %d", f.chat.snooze, wantMinutes)
	}
	if f.chat.lastText != "Vacation. Back Friday." {
		t.Errorf("chat text = %q", f.chat.lastText)
	}
	if f.chat.lastExpiry != friday.Unix() {
		t.Errorf("chat expiry = %d, want %d", f.chat.lastExpiry, friday.Unix())
	}
	if got := only(t, report, "Slack"); got.Message != "Vacation. Back Friday 7am. :desert_island: (DND until 7am)" {
		t.Errorf("Slack message = %q", got.Message)
	}

	if f.host.expires != friday.UTC().Format(time.RFC3339) {
		t.Errorf("host expiry = %q", f.host.expires)
	}
	if f.host.message != "Vacation" || f.host.scope != "O_kgDOABC" {
		t.Errorf("host message = %q scope = %q", f.host.message, f.host.scope)
	}
	if got := only(t, report, "GitHub"); got.Kind != models.OutcomeSuccess || got.Message != "Limited availability (organization only)" {
		t.Errorf("GitHub outcome = %+v", got)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeAdvisory || !strings.HasPrefix(got.Message, "Set Out of Office manually") {
		t.Errorf("Asana outcome = %+v", got)
	}
	if plan.Host.ExpiresAt == nil || !plan.Host.ExpiresAt.Equal(*plan.Chat.ExpiresAt) {
		t.Errorf("host and chat expirations differ")
	}
}

func TestVacationWhenTrackerAlreadyOOO(t *testing.T) {
	f := newFixture()
	f.tracker.ooo = true
	_, report := run(t, f, "away", "", "", "")

	if got := only(t, report, "Asana"); got.Kind != models.OutcomeSuccess || got.Message != "Out of Office already set" {
		t.Errorf("Asana outcome = %+v", got)
	}
	if got := only(t, report, "GitHub"); got.Message != "Limited availability" {
		t.Errorf("GitHub outcome = %+v", got)
	}
	if f.chat.snooze != 1440 {
		t.Errorf("snooze = %d, want 1440 without a return time", f.chat.snooze)
	}
	if got := only(t, report, "Slack"); got.Message != "Out of office :no_entry: (DND on)" {
		t.Errorf("Slack message = %q", got.Message)
	}
}

func TestSickDoesNotMarkHostBusy(t *testing.T) {
	f := newFixture()
	_, report := run(t, f, "sick", "tomorrow", "", "")

	if got := only(t, report, "GitHub"); got.Kind != models.OutcomeSkipped {
		t.Errorf("GitHub outcome = %+v, want skipped", got)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeAdvisory {
		t.Errorf("Asana outcome = %+v, want advisory", got)
	}
}

func TestBack(t *testing.T) {
	f := newFixture()
	f.tracker.ooo = true
	_, report := run(t, f, "back", "", "", "org")

	if strings.Join(f.chat.calls, ",") != "EndSnooze,SetProfile" {
		t.Errorf("chat calls = %v, want EndSnooze then SetProfile", f.chat.calls)
	}
	if f.chat.lastText != "Catching up" {
		t.Errorf("chat text = %q", f.chat.lastText)
	}
	if got := only(t, report, "Slack"); got.Kind != models.OutcomeSuccess || got.Message != "Catching up :inbox_tray: (DND off)" {
		t.Errorf("Slack outcome = %+v", got)
	}
	if strings.Join(f.host.calls, ",") != "ClearStatus" {
		t.Errorf("host calls = %v, want ClearStatus", f.host.calls)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeAdvisory || !strings.HasPrefix(got.Message, "Clear Out of Office manually") {
		t.Errorf("Asana outcome = %+v", got)
	}
}

func TestBackWithoutTrackerOOO(t *testing.T) {
	f := newFixture()
	_, report := run(t, f, "back", "", "", "")

	if got := only(t, report, "Asana"); got.Kind != models.OutcomeSkipped || got.Message != "No change" {
		t.Errorf("Asana outcome = %+v", got)
	}
}

func TestBackEndSnoozeFailureIsReported(t *testing.T) {
	f := newFixture()
	f.chat.failOn["EndSnooze"] = fmt.Errorf("Slack dnd.endSnooze: invalid_auth: %w", errors.ErrService)
	_, report := run(t, f, "back", "", "", "")

	got := report.For("Slack")
	if len(got) != 2 {
		t.Fatalf("Slack outcomes = %+v, want failure then success", got)
	}
	if got[0].Kind != models.OutcomeFailure || !strings.HasPrefix(got[0].Message, "ending DND:") {
		t.Errorf("first Slack outcome = %+v", got[0])
	}
	if got[1].Kind != models.OutcomeSuccess {
		t.Errorf("second Slack outcome = %+v", got[1])
	}
}

func TestBackWithMissingChatTokenReportsOnce(t *testing.T) {
	f := newFixture()
	missing := fmt.Errorf("SLACK_PAT not set: %w", errors.ErrMissingCredential)
	f.chat.failOn["EndSnooze"] = missing
	f.chat.failOn["SetProfile"] = missing
	_, report := run(t, f, "back", "", "", "")

	got := only(t, report, "Slack")
	if got.Kind != models.OutcomeFailure || !strings.HasPrefix(got.Message, "SLACK_PAT not set") {
		t.Errorf("Slack outcome = %+v", got)
	}
}

func TestClear(t *testing.T) {
	f := newFixture()
	plan, report := run(t, f, "clear", "friday", "", "")

	if plan.Request.Return != nil {
		t.Errorf("clear should ignore the return date")
	}
	if strings.Join(f.chat.calls, ",") != "ClearProfile,EndSnooze" {
		t.Errorf("chat calls = %v", f.chat.calls)
	}
	if got := only(t, report, "Slack"); got.Message != "Cleared (DND off)" {
		t.Errorf("Slack outcome = %+v", got)
	}
	if got := only(t, report, "GitHub"); got.Message != "Cleared" {
		t.Errorf("GitHub outcome = %+v", got)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeSkipped {
		t.Errorf("Asana outcome = %+v", got)
	}
}

func TestFailuresAreIndependent(t *testing.T) {
	f := newFixture()
	f.chat.failOn["SetProfile"] = fmt.Errorf("Slack users.profile.set: not_authed: %w", errors.ErrService)
	f.host.err = fmt.Errorf("GITHUB_PAT not set: %w", errors.ErrMissingCredential)
	f.tracker.err = fmt.Errorf("ASANA_PAT not set: %w", errors.ErrMissingCredential)
	_, report := run(t, f, "vacation", "3/10/27", "", "")

	if len(report.Outcomes) != 3 {
		t.Fatalf("outcomes = %+v, want one per service", report.Outcomes)
	}
	if got := only(t, report, "Slack"); got.Kind != models.OutcomeFailure {
		t.Errorf("Slack outcome = %+v", got)
	}
	if len(f.chat.calls) != 1 {
		t.Errorf("chat calls = %v, snooze must not run after a failed profile update", f.chat.calls)
	}
	if got := only(t, report, "GitHub"); got.Kind != models.OutcomeFailure || got.Message != "GITHUB_PAT not set: credential not set" {
		t.Errorf("GitHub outcome = %+v", got)
	}
	if got := only(t, report, "Asana"); got.Kind != models.OutcomeAdvisory {
		t.Errorf("Asana outcome = %+v, unreadable tracker counts as not set", got)
	}
	if !report.Failed() {
		t.Error("Failed() = false, want true")
	}
	if f.tracker.reads != 1 {
		t.Errorf("tracker reads = %d, want 1", f.tracker.reads)
	}
}

func TestSnoozeFailureFailsChat(t *testing.T) {
	f := newFixture()
	f.chat.failOn["SetSnooze"] = fmt.Errorf("Slack dnd.setSnooze: ratelimited: %w", errors.ErrService)
	_, report := run(t, f, "eod", "", "", "")

	if got := only(t, report, "Slack"); got.Kind != models.OutcomeFailure {
		t.Errorf("Slack outcome = %+v", got)
	}
}

func TestLunch(t *testing.T) {
	lunchNow := time.Date(2026, time.October, 14, 12, 7, 0, 0, time.Local)

	tests := []struct {
		name  string
		token string
		want  time.Time
		mins  int64
	}{
		{name: "default return", want: time.Date(2026, time.October, 14, 13, 15, 0, 0, time.Local), mins: 68},
		{name: "explicit time", token: "1pm", want: time.Date(2026, time.October, 14, 13, 0, 0, 0, time.Local), mins: 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest("lunch", tt.token, "9am", lunchNow)
			if err != nil {
				t.Fatalf("NewRequest() error = %v", err)
			}
			if req.Return == nil || !req.Return.Equal(tt.want) {
				t.Fatalf("Return = %v, want %v", req.Return, tt.want)
			}
			plan := BuildPlan(req, lunchNow, "")
			if plan.Chat.SnoozeMinutes != tt.mins {
				t.Errorf("SnoozeMinutes = %d, want %d", plan.Chat.SnoozeMinutes, tt.mins)
			}
			if plan.Chat.Text != "Lunchin'" {
				t.Errorf("chat text = %q, lunch does not show a return date", plan.Chat.Text)
			}
		})
	}
}

func TestNewRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		date    string
		time    string
		want    error
	}{
		{name: "unknown keyword", keyword: "nap", want: errors.ErrUnknownKeyword},
		{name: "unknown keyword checked before date", keyword: "nap", date: "garbage", want: errors.ErrUnknownKeyword},
		{name: "bad date", keyword: "vacation", date: "someday", want: errors.ErrDateParse},
		{name: "bad time", keyword: "vacation", date: "friday", time: "9:xx", want: errors.ErrTimeParse},
		{name: "bad lunch time", keyword: "lunch", date: "25:00", want: errors.ErrTimeParse},
		{name: "clear still validates", keyword: "clear", date: "13/40", want: errors.ErrDateParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.keyword, tt.date, tt.time, now)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewRequest() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSnoozeMinutes(t *testing.T) {
	past := now.Add(-time.Hour)
	soon := now.Add(90*time.Minute + 30*time.Second)
	tests := []struct {
		name string
		back *time.Time
		want int64
	}{
		{name: "no return time", back: nil, want: 1440},
		{name: "in the past", back: &past, want: 1440},
		{name: "right now", back: &now, want: 1440},
		{name: "ninety minutes", back: &soon, want: 90},
	}

	for _, tt := range tests {
		if got := SnoozeMinutes(tt.back, now); got != tt.want {
			t.Errorf("%s: SnoozeMinutes() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPrinter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	var report models.DispatchReport
	report.Add("Slack", models.OutcomeSuccess, "In a meeting :calendar:")
	report.Add("GitHub", models.OutcomeFailure, "GITHUB_PAT not set: credential not set")
	report.Add("Asana", models.OutcomeSkipped, "No change")
	p.Report(report)

	wantOut := "  Slack   ✓ In a meeting :calendar:\n  Asana   - No change\n"
	if out.String() != wantOut {
		t.Errorf("stdout = %q, want %q", out.String(), wantOut)
	}
	wantErr := "  GitHub  ✗ GITHUB_PAT not set: credential not set\n"
	if errOut.String() != wantErr {
		t.Errorf("stderr = %q, want %q", errOut.String(), wantErr)
	}
}

func TestPrinterPlan(t *testing.T) {
	var out bytes.Buffer
	req, err := NewRequest("back", "", "", now)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	NewPrinter(&out, &out).Plan(BuildPlan(req, now, ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("plan lines = %q, want 3", lines)
	}
	if !strings.Contains(lines[0], `end dnd, set "Catching up" :inbox_tray:`) {
		t.Errorf("chat line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "GitHub  ~ clear") {
		t.Errorf("host line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "check out of office is cleared") {
		t.Errorf("tracker line = %q", lines[2])
	}
}
