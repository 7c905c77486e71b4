// SPDX-License-Identifier: EPL-2.0

package wav

import "log/slog"

// Option configures a session when it is opened.
type Option func(*File)

// WithLogger sets the logger that receives diagnostics such as degraded
// sample encodings. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *File) {
		if l != nil {
			f.logger = l
		}
	}
}
