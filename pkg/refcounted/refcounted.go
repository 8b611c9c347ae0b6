// Package refcounted carries the refcount-logging hooks from Firefox's
// mfbt/RefCounted.cpp. Leak-checking builds install a pair of callbacks that
// record every AddRef and Release; objects constructed before the hooks are
// installed are counted so the miss can be reported instead of silently
// skewing the leak ledger.
package refcounted

import (
	"sync/atomic"

	"github.com/opd-ai/firefox/pkg/log"
)

// LogAddRefFunc records an AddRef on obj with the resulting refcount.
type LogAddRefFunc func(obj uintptr, refcount uint64, typeName string, instanceSize uint32)

// LogReleaseFunc records a Release on obj with the resulting refcount.
type LogReleaseFunc func(obj uintptr, refcount uint64, typeName string)

var (
	addRefHook  atomic.Pointer[LogAddRefFunc]
	releaseHook atomic.Pointer[LogReleaseFunc]

	// Hook-less AddRefs, i.e. objects born before SetLeakCheckingFuncs ran.
	preInitUses atomic.Uint64
)

// SetLeakCheckingFuncs installs the leak-checking callbacks. It warns when
// AddRefs were already logged without hooks, which means some static
// initializer created refcounted objects too early to be tracked.
func SetLeakCheckingFuncs(addRef LogAddRefFunc, release LogReleaseFunc) {
	if n := preInitUses.Load(); n > 0 {
		log.Warn().
			Uint64("missed_addrefs", n).
			Msg("refcount leak hooks installed after refcounted objects were created")
	}
	addRefHook.Store(&addRef)
	releaseHook.Store(&release)
}

// LogAddRef forwards to the installed hook, or counts the miss.
func LogAddRef(obj uintptr, refcount uint64, typeName string, instanceSize uint32) {
	if f := addRefHook.Load(); f != nil {
		(*f)(obj, refcount, typeName, instanceSize)
		return
	}
	preInitUses.Add(1)
}

// LogRelease forwards to the installed hook. Releases before hook
// installation are dropped; the matching AddRef was already counted.
func LogRelease(obj uintptr, refcount uint64, typeName string) {
	if f := releaseHook.Load(); f != nil {
		(*f)(obj, refcount, typeName)
	}
}

// PreInitUses returns how many AddRefs ran before hooks were installed.
func PreInitUses() uint64 {
	return preInitUses.Load()
}
