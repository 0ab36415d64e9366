package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"creditos-backoffice/internal/domain/automation"

	"github.com/redis/go-redis/v9"
)

const deadLetterKey = "webhook:deadletter"

// DeadLetter is one failed delivery waiting for the redelivery sweep.
type DeadLetter struct {
	RuleID    string    `json:"rule_id"`
	TargetURL string    `json:"target_url"`
	Body      []byte    `json:"body"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error"`
	FirstAt   time.Time `json:"first_at"`
}

// DeadLetterStore is the retry backlog. Redis-backed in production; tests
// swap in an in-memory implementation.
type DeadLetterStore interface {
	Push(ctx context.Context, d DeadLetter) error
	Pop(ctx context.Context) (*DeadLetter, error)
	Len(ctx context.Context) (int64, error)
}

type RedisDeadLetters struct{ rdb *redis.Client }

func NewRedisDeadLetters(rdb *redis.Client) *RedisDeadLetters { return &RedisDeadLetters{rdb: rdb} }

func (s *RedisDeadLetters) Push(ctx context.Context, d DeadLetter) error {
	payload, _ := json.Marshal(d)
	return s.rdb.LPush(ctx, deadLetterKey, payload).Err()
}

func (s *RedisDeadLetters) Pop(ctx context.Context) (*DeadLetter, error) {
	v, err := s.rdb.RPop(ctx, deadLetterKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var d DeadLetter
	if err := json.Unmarshal(v, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RedisDeadLetters) Len(ctx context.Context) (int64, error) {
	return s.rdb.LLen(ctx, deadLetterKey).Result()
}

// Dispatcher is the outbound event bus: synchronous first attempt per
// matching rule, failures dead-lettered for the cron sweep.
type Dispatcher struct {
	repo        automation.Repository
	letters     DeadLetterStore
	client      *http.Client
	maxAttempts int
}

func NewDispatcher(repo automation.Repository, letters DeadLetterStore, maxAttempts int) *Dispatcher {
	return &Dispatcher{
		repo:        repo,
		letters:     letters,
		client:      &http.Client{Timeout: 10 * time.Second},
		maxAttempts: maxAttempts,
	}
}

// Emit fans the event out to every matching active rule. Best-effort: errors
// are dead-lettered (or logged), never returned to the mutating caller.
func (d *Dispatcher) Emit(ctx context.Context, ev automation.Event) {
	rules, err := d.repo.ListActiveByEvent(ctx, ev.Type)
	if err != nil {
		log.Printf("automation: list rules for %s: %v", ev.Type, err)
		return
	}
	for i := range rules {
		if !rules[i].Matches(ev) {
			continue
		}
		if err := d.deliver(ctx, rules[i].TargetURL, ev); err != nil {
			d.deadLetter(ctx, &rules[i], ev, err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, url string, ev automation.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s returned %d", url, resp.StatusCode)
	}
	return nil
}

func (d *Dispatcher) deadLetter(ctx context.Context, r *automation.Rule, ev automation.Event, cause error) {
	body, _ := json.Marshal(ev)
	dl := DeadLetter{
		RuleID:    r.RuleID,
		TargetURL: r.TargetURL,
		Body:      body,
		Attempts:  1,
		LastError: cause.Error(),
		FirstAt:   time.Now().UTC(),
	}
	if err := d.letters.Push(ctx, dl); err != nil {
		log.Printf("automation: dead-letter push for rule %s: %v", r.RuleID, err)
	}
}

// Sweep retries every currently dead-lettered delivery once. Entries that
// fail again go back on the list until the attempt cap; beyond it they are
// dropped with a log line. Returns the number redelivered.
func (d *Dispatcher) Sweep(ctx context.Context) (int, error) {
	n, err := d.letters.Len(ctx)
	if err != nil {
		return 0, err
	}
	delivered := 0
	for i := int64(0); i < n; i++ {
		dl, err := d.letters.Pop(ctx)
		if err != nil {
			return delivered, err
		}
		if dl == nil {
			break
		}
		if err := d.post(ctx, dl.TargetURL, dl.Body); err != nil {
			dl.Attempts++
			dl.LastError = err.Error()
			if dl.Attempts >= d.maxAttempts {
				log.Printf("automation: dropping delivery to %s after %d attempts: %v", dl.TargetURL, dl.Attempts, err)
				continue
			}
			if err := d.letters.Push(ctx, *dl); err != nil {
				return delivered, err
			}
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (d *Dispatcher) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s returned %d", url, resp.StatusCode)
	}
	return nil
}
