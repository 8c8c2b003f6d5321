// Package objects streams freshly generated items to remote subscribers over
// server-sent events.
//
// On the server side a Source (Emitter or RedisSource) feeds a
// broadcast.Publisher, and StreamHandler exposes it as GET /objects:
//
//	pub := broadcast.NewPublisher[objects.Item](objects.NewEmitter(cfg, log))
//	defer pub.Close()
//
//	r := chi.NewRouter()
//	r.Mount("/", objects.Router(pub, log))
//
// Every connection gets its own sink. A slow connection only ever sees the
// newest pending item; it never delays the producer or other connections.
// Each item is sent as one event:
//
//	id: 0c5a2f8e-...
//	data: {"id":"0c5a2f8e-..."}
//
// When the upstream ends, the stream closes with a "complete" event, or an
// "error" event carrying the failure message.
//
// On the client side Client.Subscribe returns a Stream. It delivers items to a
// broadcast.Observer and is cancelled with Dispose, which never reports an
// error:
//
//	stream := objects.NewClient("http://localhost:8080").Subscribe(ctx, broadcast.Observer[objects.Item]{
//		OnNext: func(it objects.Item) { log.Info("Next", logger.ItemID(it.ID)) },
//	})
//	defer stream.Dispose()
package objects
