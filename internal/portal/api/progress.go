package api

import "io"

// progressReader reports upload progress as whole percentages of the wrapped
// reader's expected size. Each percentage is reported at most once and only
// in increasing order, so callers can render a simple progress bar.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(percent int)
}

func newProgressReader(r io.Reader, total int64, report func(percent int)) *progressReader {
	return &progressReader{r: r, total: total, last: -1, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
