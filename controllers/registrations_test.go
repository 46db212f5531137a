package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/felixdarko/eventplanner-api/models"
	"github.com/felixdarko/eventplanner-api/store"
	"github.com/felixdarko/eventplanner-api/utils"
)

// memoryLedger is an in-memory store.RegistrationLedger. Its mutex gives
// the same distinct-ticket guarantee the Mongo counter does.
type memoryLedger struct {
	mu   sync.Mutex
	seq  int64
	regs []models.Registration
}

func (l *memoryLedger) Insert(_ context.Context, reg *models.Registration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	now := time.Now().UTC()
	reg.ID = uuid.NewString()
	reg.TicketID = utils.FormatTicketID(now.Year(), l.seq)
	reg.RegistrationDate = now
	reg.Status = models.StatusConfirmed
	l.regs = append(l.regs, *reg)
	return nil
}

func (l *memoryLedger) ListByUser(_ context.Context, userID string) ([]models.Registration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.Registration{}
	for _, r := range l.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *memoryLedger) FindByTicketID(_ context.Context, ticketID string) (*models.Registration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.regs {
		if r.TicketID == ticketID {
			clone := r
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func newRegistrationsRouter(ledger store.RegistrationLedger) *gin.Engine {
	h := NewRegistrationsHandler(ledger, store.NewEventCatalog(store.SeedEvents()))
	r := gin.New()
	regs := r.Group("/api/registrations")
	regs.POST("", h.Create)
	regs.GET("/user/:userId", h.ListByUser)
	regs.POST("/payment-summary", h.PaymentSummary)
	regs.GET("/confirmation/:ticketId", h.Confirmation)
	return r
}

const regBody = `{"eventId":"1","userId":"42","firstName":"Jane","lastName":"Doe","email":"jane@x.com","phone":"555-0100","company":"Acme"}`

var ticketPattern = regexp.MustCompile(`^EVT-\d{4}-\d{3,}$`)

func TestCreateRegistration_TicketFormat(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	w := doJSON(t, r, http.MethodPost, "/api/registrations", regBody, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		TicketID     string              `json:"ticketId"`
		Registration models.Registration `json:"registration"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ticketPattern.MatchString(resp.TicketID) {
		t.Errorf("ticket id %q does not match EVT-<year>-<seq>", resp.TicketID)
	}
	want := utils.FormatTicketID(time.Now().UTC().Year(), 1)
	if resp.TicketID != want {
		t.Errorf("first registration: expected %s, got %s", want, resp.TicketID)
	}
	if resp.Registration.Status != models.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", resp.Registration.Status)
	}
}

func TestCreateRegistration_GuestAndUnknownEvent(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	// eventId is deliberately not validated against the catalog
	body := `{"eventId":"no-such-event","firstName":"A","lastName":"B","email":"a@b.com","phone":"1"}`
	w := doJSON(t, r, http.MethodPost, "/api/registrations", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Registration models.Registration `json:"registration"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Registration.UserID != models.GuestUserID {
		t.Errorf("expected guest sentinel, got %q", resp.Registration.UserID)
	}
}

func TestCreateRegistration_MissingFields(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})
	w := doJSON(t, r, http.MethodPost, "/api/registrations", `{"eventId":"1"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestConfirmation_RoundTrip(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	w := doJSON(t, r, http.MethodPost, "/api/registrations", regBody, "")
	var created struct {
		TicketID     string              `json:"ticketId"`
		Registration models.Registration `json:"registration"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/registrations/confirmation/"+created.TicketID, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Registration models.Registration `json:"registration"`
		Event        models.EventSummary `json:"event"`
		TicketID     string              `json:"ticketId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Registration != created.Registration {
		t.Errorf("confirmation registration differs:\n got %+v\nwant %+v", resp.Registration, created.Registration)
	}
	if resp.Event.Title != "Tech Conference 2025" {
		t.Errorf("expected Tech Conference 2025, got %q", resp.Event.Title)
	}
	if resp.TicketID != created.TicketID {
		t.Errorf("ticket id mismatch: %s vs %s", resp.TicketID, created.TicketID)
	}
}

func TestConfirmation_NotFound(t *testing.T) {
	ledger := &memoryLedger{}
	r := newRegistrationsRouter(ledger)

	w := doJSON(t, r, http.MethodGet, "/api/registrations/confirmation/EVT-2099-999", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown ticket: expected 404, got %d", w.Code)
	}

	// a registration against an event the catalog does not know must fail,
	// not fall back to a default event
	body := `{"eventId":"no-such-event","userId":"7","firstName":"A","lastName":"B","email":"a@b.com","phone":"1"}`
	w = doJSON(t, r, http.MethodPost, "/api/registrations", body, "")
	var created struct {
		TicketID string `json:"ticketId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	w = doJSON(t, r, http.MethodGet, "/api/registrations/confirmation/"+created.TicketID, "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown event: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListByUser(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	for _, userID := range []string{"42", "42", "7"} {
		body := fmt.Sprintf(`{"eventId":"1","userId":%q,"firstName":"A","lastName":"B","email":"a@b.com","phone":"1"}`, userID)
		if w := doJSON(t, r, http.MethodPost, "/api/registrations", body, ""); w.Code != http.StatusCreated {
			t.Fatalf("register: expected 201, got %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/registrations/user/42", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var regs []models.Registration
	if err := json.Unmarshal(w.Body.Bytes(), &regs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(regs))
	}
	if regs[0].TicketID >= regs[1].TicketID {
		t.Errorf("expected insertion order, got %s before %s", regs[0].TicketID, regs[1].TicketID)
	}

	w = doJSON(t, r, http.MethodGet, "/api/registrations/user/unknown", "", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("unknown user: expected empty list, got %d %s", w.Code, w.Body.String())
	}
}

func TestPaymentSummary(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	type summary struct {
		EventTitle  string  `json:"eventTitle"`
		EventTicket float64 `json:"eventTicket"`
		ServiceFee  float64 `json:"serviceFee"`
		Total       float64 `json:"total"`
	}

	// paid event carries the flat fee
	w := doJSON(t, r, http.MethodPost, "/api/registrations/payment-summary", `{"eventId":"1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var s summary
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.EventTicket != 299 || s.ServiceFee != ServiceFee || s.Total != 299+ServiceFee {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.EventTitle != "Tech Conference 2025" {
		t.Errorf("unexpected title: %q", s.EventTitle)
	}

	// free event carries no fee, total equals price
	w = doJSON(t, r, http.MethodPost, "/api/registrations/payment-summary", `{"eventId":"3"}`, "")
	var free summary
	if err := json.Unmarshal(w.Body.Bytes(), &free); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if free.ServiceFee != 0 || free.Total != 0 {
		t.Errorf("free event summary: %+v", free)
	}

	// idempotent: repeated calls return identical totals
	w = doJSON(t, r, http.MethodPost, "/api/registrations/payment-summary", `{"eventId":"1"}`, "")
	var again summary
	if err := json.Unmarshal(w.Body.Bytes(), &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if again != s {
		t.Errorf("summary not idempotent: %+v vs %+v", again, s)
	}

	w = doJSON(t, r, http.MethodPost, "/api/registrations/payment-summary", `{"eventId":"nope"}`, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown event: expected 404, got %d", w.Code)
	}
}

func TestConcurrentRegistrations_DistinctTicketIDs(t *testing.T) {
	r := newRegistrationsRouter(&memoryLedger{})

	const n = 50
	tickets := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := doJSON(t, r, http.MethodPost, "/api/registrations", regBody, "")
			var resp struct {
				TicketID string `json:"ticketId"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				return
			}
			tickets <- resp.TicketID
		}()
	}
	wg.Wait()
	close(tickets)

	seen := map[string]bool{}
	count := 0
	for id := range tickets {
		if seen[id] {
			t.Fatalf("duplicate ticket id %s", id)
		}
		seen[id] = true
		count++
	}
	if count != n {
		t.Fatalf("expected %d tickets, got %d", n, count)
	}
}
