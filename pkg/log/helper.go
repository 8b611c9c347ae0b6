package log

import (
	"fmt"
	stdlog "log"
)

func MustInit(app string) {
	if err := Init(fmt.Sprintf("%s.db", app)); err != nil {
		stdlog.Fatalf("FATAL: Failed to initialize logger: %v\n", err)
	}
}
