package storage

import (
	"context"
	"log"
)

// Cleaner removes backing files best-effort. A failed removal never
// reaches the caller: the database deletion is authoritative and an
// orphaned file is reconciled on a background retry, or dropped.
type Cleaner struct {
	storage Storage
	queue   chan string
}

func NewCleaner(s Storage) *Cleaner {
	c := &Cleaner{
		storage: s,
		queue:   make(chan string, 100),
	}

	go c.worker()
	return c
}

func (c *Cleaner) worker() {
	for url := range c.queue {
		if err := c.storage.Remove(context.Background(), url); err != nil {
			log.Println("storage cleanup retry failed, dropping:", url, err)
		}
	}
}

// Remove tries the removal inline and hands failures to the worker.
func (c *Cleaner) Remove(url string) {
	err := c.storage.Remove(context.Background(), url)
	if err == nil {
		return
	}
	log.Println("storage cleanup failed, queueing retry:", url, err)

	select {
	case c.queue <- url:
	default:
		log.Println("cleanup queue full, dropping:", url)
	}
}

// RemoveAll queues every url of a deleted image set.
func (c *Cleaner) RemoveAll(urls []string) {
	for _, url := range urls {
		c.Remove(url)
	}
}
