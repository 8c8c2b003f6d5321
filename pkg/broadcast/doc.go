// Package broadcast provides a hot, type-safe relay that fans values pushed by a
// single producer out to any number of independently paced subscribers.
//
// The relay never blocks the producer. Every attached sink holds at most one
// pending value: when a new value arrives before the previous one was consumed,
// the previous value is replaced (the LATEST overflow policy). Subscribers only
// observe values pushed after they attached; there is no replay.
//
// Basic usage:
//
//	relay := broadcast.NewRelay[string]()
//
//	sub := relay.Subscribe(ctx, broadcast.Observer[string]{
//		OnNext:     func(v string) { fmt.Println(v) },
//		OnError:    func(err error) { log.Println(err) },
//		OnComplete: func() { log.Println("done") },
//	})
//	defer sub.Dispose()
//
//	relay.Push("hello")
//
// A Publisher adds a lazily connected upstream Source on top of the relay. The
// source starts with the first subscriber and is shared by all subscribers that
// follow; it is not stopped when the subscriber count drops to zero.
//
//	pub := broadcast.NewPublisher[Item](source, broadcast.WithLogger(log))
//	defer pub.Close()
//
//	sink := pub.Attach()
//	defer pub.Detach(sink)
//
//	for {
//		item, err := sink.Receive(ctx)
//		if err != nil {
//			break // ErrCompleted, *UpstreamError, ErrDetached or ctx error
//		}
//		handle(item)
//	}
//
// Terminal events (Complete and Fail) are delivered exactly once to every
// attached sink. A sink attached after the relay terminated receives the
// terminal event immediately.
package broadcast
