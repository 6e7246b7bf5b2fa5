package handle

type transferFunc func(p []byte, off int64) (int, error)

//transfer moves bufs in order starting at the cursor, advancing it after
//every buffer. If a buffer fails after earlier ones moved data, the
//error is dropped and the partial total returned. Callers hold h.mu.
func (h *Handle) transfer(bufs [][]byte, f transferFunc) (int, error) {
	total := 0
	for _, b := range bufs {
		n, err := f(b, h.cursor)
		if err != nil {
			if total != 0 {
				break
			}
			return 0, err
		}
		total += n
		h.cursor += int64(n)
	}
	return total, nil
}

//ReadVectored reads into bufs in order from the cursor.
func (h *Handle) ReadVectored(bufs [][]byte) (int, error) {
	if err := h.canRead("readv"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transfer(bufs, h.node.ReadAt)
}

//WriteVectored writes bufs in order at the cursor, or at the end of the
//node in append mode.
func (h *Handle) WriteVectored(bufs [][]byte) (int, error) {
	if err := h.canWrite("writev"); err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.seekAppend(); err != nil {
		return 0, err
	}
	return h.transfer(bufs, h.node.WriteAt)
}
