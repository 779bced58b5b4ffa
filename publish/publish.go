// Package publish mirrors register values into redis so dashboards and
// other tools can follow the chip.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handegar/tas2505/regs"
)

// Publisher receives register values.
type Publisher interface {
	Store(ctx context.Context, r regs.Reg, v uint8) error
	Announce(ctx context.Context, r regs.Reg, v uint8) error
	Close() error
}

// Redis keeps one hash per page, <prefix>:page<N>, mapping register
// names to values, and announces changes on <prefix>:changes.
type Redis struct {
	db     *redis.Client
	prefix string
}

func NewRedis(addr, prefix string) *Redis {
	return &Redis{
		db:     redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return errors.Wrap(r.db.Ping(ctx).Err(), "redis")
}

func (r *Redis) PageKey(page uint8) string {
	return fmt.Sprintf("%s:page%d", r.prefix, page)
}

func (r *Redis) ChangesChannel() string { return r.prefix + ":changes" }

func (r *Redis) Store(ctx context.Context, reg regs.Reg, v uint8) error {
	err := r.db.HSet(ctx, r.PageKey(reg.Page()), reg.String(), fmt.Sprintf("0x%02x", v)).Err()
	return errors.Wrapf(err, "HSET %s", reg)
}

func (r *Redis) Announce(ctx context.Context, reg regs.Reg, v uint8) error {
	err := r.db.Publish(ctx, r.ChangesChannel(), fmt.Sprintf("%s=0x%02x", reg, v)).Err()
	return errors.Wrapf(err, "PUBLISH %s", reg)
}

func (r *Redis) Close() error { return r.db.Close() }

// PageReader reads a whole page of registers.
type PageReader interface {
	ReadPage(p uint8) ([regs.PageSize]uint8, error)
}

// Watcher publishes the named registers of pages 0 and 1, sending only
// the values that changed since the last poll.
type Watcher struct {
	m    PageReader
	p    Publisher
	last map[regs.Reg]uint8
	log  *logrus.Entry
}

func NewWatcher(m PageReader, p Publisher) *Watcher {
	return &Watcher{
		m:    m,
		p:    p,
		last: make(map[regs.Reg]uint8),
		log:  logrus.WithField("component", "publish"),
	}
}

// Poll reads both pages once and returns how many registers changed.
func (w *Watcher) Poll(ctx context.Context) (int, error) {
	changed := 0
	for _, page := range []uint8{0, 1} {
		b, err := w.m.ReadPage(page)
		if err != nil {
			return changed, err
		}
		for _, ri := range regs.Registers {
			r := ri.Reg
			if r.Page() != page || r.Offset() == 0 {
				continue
			}
			v := b[r.Offset()]
			if old, ok := w.last[r]; ok && old == v {
				continue
			}
			if err := w.p.Store(ctx, r, v); err != nil {
				return changed, err
			}
			if err := w.p.Announce(ctx, r, v); err != nil {
				return changed, err
			}
			w.last[r] = v
			changed++
		}
	}
	if changed > 0 {
		w.log.WithField("changed", changed).Debug("published")
	}
	return changed, nil
}

// ErrBadInterval is returned by Watch for an interval that is not
// positive.
var ErrBadInterval = errors.New("watch interval must be positive")

// Watch polls every interval until ctx is done.
func Watch(ctx context.Context, m PageReader, p Publisher, interval time.Duration) error {
	if interval <= 0 {
		return errors.Wrapf(ErrBadInterval, "%v", interval)
	}
	w := NewWatcher(m, p)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := w.Poll(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
