package matching

import (
	"context"
	"sync"
)

type cmdKind int8

const (
	cmdSubmit cmdKind = iota
	cmdCancel
	cmdAmend
	cmdReplace
)

type command struct {
	kind  cmdKind
	order Order
	id    int64
	qty   int64
	price int64
	reply chan result
}

type result struct {
	trades []Trade
	err    error
}

// BookActor enforces the single-writer contract structurally: one goroutine
// owns the engine and all mutating calls arrive as messages. Read-only
// queries still go to the Engine directly.
type BookActor struct {
	engine *Engine
	cmds   chan command
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartBookActor spawns the owning goroutine. buffer is the command queue
// depth; 0 makes every call fully synchronous.
func StartBookActor(engine *Engine, buffer int) *BookActor {
	a := &BookActor{
		engine: engine,
		cmds:   make(chan command, buffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *BookActor) loop() {
	defer close(a.done)
	for {
		select {
		case cmd := <-a.cmds:
			cmd.reply <- a.apply(cmd)
		case <-a.quit:
			// drain commands that were queued before shutdown
			for {
				select {
				case cmd := <-a.cmds:
					cmd.reply <- a.apply(cmd)
				default:
					return
				}
			}
		}
	}
}

func (a *BookActor) apply(cmd command) result {
	var res result
	switch cmd.kind {
	case cmdSubmit:
		res.trades, res.err = a.engine.Submit(cmd.order)
	case cmdCancel:
		res.err = a.engine.Cancel(cmd.id)
	case cmdAmend:
		res.err = a.engine.AmendQuantity(cmd.id, cmd.qty)
	case cmdReplace:
		res.trades, res.err = a.engine.Replace(cmd.id, cmd.price)
	}
	return res
}

func (a *BookActor) Submit(ctx context.Context, o Order) ([]Trade, error) {
	return a.send(ctx, command{kind: cmdSubmit, order: o})
}

func (a *BookActor) Cancel(ctx context.Context, id int64) error {
	_, err := a.send(ctx, command{kind: cmdCancel, id: id})
	return err
}

func (a *BookActor) AmendQuantity(ctx context.Context, id, qty int64) error {
	_, err := a.send(ctx, command{kind: cmdAmend, id: id, qty: qty})
	return err
}

func (a *BookActor) Replace(ctx context.Context, id, price int64) ([]Trade, error) {
	return a.send(ctx, command{kind: cmdReplace, id: id, price: price})
}

// send enqueues a command and waits for the reply. cmds is never closed, so
// a caller racing Close can at worst enqueue onto a buffer nobody drains; the
// quit check on the reply side turns that into ErrActorClosed.
func (a *BookActor) send(ctx context.Context, cmd command) ([]Trade, error) {
	// reply is buffered so the loop never blocks on a caller that gave up
	cmd.reply = make(chan result, 1)
	select {
	case a.cmds <- cmd:
	case <-a.quit:
		return nil, ErrActorClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-cmd.reply:
		return res.trades, res.err
	case <-a.quit:
		// the drain pass may still have answered this command
		select {
		case res := <-cmd.reply:
			return res.trades, res.err
		default:
			return nil, ErrActorClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Engine exposes the wrapped engine for read-only queries.
func (a *BookActor) Engine() *Engine {
	return a.engine
}

// Close stops the owning goroutine after draining queued commands. Safe to
// call concurrently with senders and more than once.
func (a *BookActor) Close() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}
