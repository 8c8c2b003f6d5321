// Package eventstream implements the text/event-stream wire format used to
// push items to remote subscribers.
//
// Writer prepares an http.ResponseWriter for streaming and writes events,
// flushing after each one. It is built on the datastar server-sent event
// generator; every event carries an explicit event line, and keep-alives are
// data-less ping events. Reader decodes a response body back into events,
// following the HTML server-sent events parsing rules: comment lines are
// ignored, multiple data lines are joined with a newline, and the last seen id
// is carried over to later events.
//
//	w, err := eventstream.NewWriter(rw, req)
//	if err != nil {
//		return err
//	}
//	err = w.SendJSON("", item.ID, item)
//
//	r := eventstream.NewReader(resp.Body)
//	for {
//		ev, err := r.Next()
//		if err != nil {
//			break // io.EOF when the server closed the stream
//		}
//		var item objects.Item
//		_ = ev.Decode(&item)
//	}
package eventstream
