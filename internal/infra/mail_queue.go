package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const MailQueueKey = "walle_mail_queue" // API -> worker (RPUSH -> BLPOP)

const (
	MailKindActivation    = "ACTIVATION"
	MailKindPasswordReset = "PASSWORD_RESET"
)

// MailJob is the message pushed onto the Redis list for the mail worker
// to consume.
type MailJob struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// QueueNotifier implements domain.Notifier by enqueueing mail jobs.
// Delivery happens out of band, so a slow or failing SMTP server never
// blocks the HTTP request that triggered the email.
type QueueNotifier struct {
	rdb *redis.Client
}

func NewQueueNotifier(rdb *redis.Client) *QueueNotifier {
	return &QueueNotifier{rdb: rdb}
}

func (q *QueueNotifier) SendActivation(ctx context.Context, email, token string) error {
	return q.enqueue(ctx, MailJob{Kind: MailKindActivation, Email: email, Token: token})
}

func (q *QueueNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	return q.enqueue(ctx, MailJob{Kind: MailKindPasswordReset, Email: email, Token: token})
}

func (q *QueueNotifier) enqueue(ctx context.Context, job MailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	if err := q.rdb.RPush(ctx, MailQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push mail job to redis: %w", err)
	}
	return nil
}

// MailWorker drains the mail queue and delivers via SMTP.
type MailWorker struct {
	rdb    *redis.Client
	mailer *Mailer
}

func NewMailWorker(rdb *redis.Client, mailer *Mailer) *MailWorker {
	return &MailWorker{rdb: rdb, mailer: mailer}
}

// Run blocks until ctx is cancelled. Delivery failures are logged and the
// job is dropped; the token inside stays valid until its expiry, so the
// user can retrigger the email (e.g. by logging in while inactive).
func (w *MailWorker) Run(ctx context.Context) {
	log.Println("MailWorker: started")
	for {
		result, err := w.rdb.BLPop(ctx, 5*time.Second, MailQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // empty queue
			}
			if ctx.Err() != nil {
				log.Println("MailWorker: stopped")
				return
			}
			log.Printf("MailWorker: failed to pop mail job: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// BLPop returns [key, value]
		if len(result) < 2 {
			continue
		}

		var job MailJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("MailWorker: invalid mail job: %v", err)
			continue
		}

		w.deliver(ctx, job)
	}
}

func (w *MailWorker) deliver(ctx context.Context, job MailJob) {
	var err error
	switch job.Kind {
	case MailKindActivation:
		err = w.mailer.SendActivation(ctx, job.Email, job.Token)
	case MailKindPasswordReset:
		err = w.mailer.SendPasswordReset(ctx, job.Email, job.Token)
	default:
		log.Printf("MailWorker: unknown mail kind %q", job.Kind)
		return
	}

	if err != nil {
		log.Printf("MailWorker: failed to deliver %s mail to %s: %v", job.Kind, job.Email, err)
	}
}
