package common

import (
	"sync"
	"testing"
	"time"
)

func TestQueueHandlerChunks(t *testing.T) {
	mu := sync.Mutex{}
	chunks := [][]int{}
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		chunks = append(chunks, append([]int{}, items...))
	}, 3, time.Hour)
	q.Add(1, 2, 3, 4, 5)
	q.Add(6, 7)
	q.Close()
	q.Close()

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %v", chunks)
	}
	if len(chunks[0]) != 3 || len(chunks[2]) != 1 || chunks[2][0] != 7 {
		t.Errorf("Unexpected chunks %v", chunks)
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue")
	}
}

func TestQueueHandlerProcessesOnTick(t *testing.T) {
	got := make(chan []string, 1)
	q := NewQueueHandler(func(items []string) {
		got <- items
	}, 10, 10*time.Millisecond)
	defer q.Close()
	q.Add("a")
	select {
	case items := <-got:
		if len(items) != 1 || items[0] != "a" {
			t.Errorf("Unexpected items %v", items)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected queue to be processed")
	}
}
