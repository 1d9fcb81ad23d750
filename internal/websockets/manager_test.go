package websockets

import (
	"fmt"
	"sync"
	"testing"
)

func TestManager_ConcurrentBroadcasts(t *testing.T) {
	manager := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(run int) {
			defer wg.Done()
			importID := fmt.Sprintf("run-%d", run)
			for j := 1; j <= 50; j++ {
				manager.SendImportProgress(importID, map[string]any{"imported": j})
			}
			manager.SendImportComplete(importID, map[string]any{"imported": 50})
			manager.SendImportError(importID, "insert failed")
		}(i)
	}
	wg.Wait()
}
