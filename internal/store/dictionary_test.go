package store_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/store"
	"github.com/kubev2v/ipc-worker/internal/store/migrations"
)

var _ = Describe("DictionaryStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Add", func() {
		// Given an empty dictionary
		// When the same word is added three times
		// Then the returned count should grow by one each time
		It("should insert then increment the count", func() {
			for i := int64(1); i <= 3; i++ {
				count, err := s.Dictionary().Add(ctx, "hello")
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(i))
			}

			entry, err := s.Dictionary().Get(ctx, "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Count).To(Equal(int64(3)))
		})

		It("should handle concurrent adds of the same word", func() {
			const numGoroutines = 20
			var wg sync.WaitGroup
			errs := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					if _, err := s.Dictionary().Add(ctx, "shared"); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)

			Expect(errs).To(BeEmpty())
			entry, err := s.Dictionary().Get(ctx, "shared")
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Count).To(Equal(int64(numGoroutines)))
		})
	})

	Context("Get", func() {
		It("should return ErrEntryNotFound for an unknown word", func() {
			_, err := s.Dictionary().Get(ctx, "missing")
			Expect(err).To(MatchError(store.ErrEntryNotFound))
		})
	})

	Context("List and Count", func() {
		BeforeEach(func() {
			for i := range 5 {
				_, err := s.Dictionary().Add(ctx, fmt.Sprintf("apple-%d", i))
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := s.Dictionary().Add(ctx, "banana")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should list every entry ordered by word", func() {
			entries, err := s.Dictionary().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(6))
			Expect(entries[0].Word).To(Equal("apple-0"))
			Expect(entries[5].Word).To(Equal("banana"))
		})

		It("should filter by prefix and paginate", func() {
			entries, err := s.Dictionary().List(ctx, store.ByPrefix("apple"), store.WithLimit(2), store.WithOffset(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Word).To(Equal("apple-1"))
			Expect(entries[1].Word).To(Equal("apple-2"))

			count, err := s.Dictionary().Count(ctx, store.ByPrefix("apple"))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(5))
		})

		// Given words containing LIKE wildcard characters
		// When filtering by a prefix made of those characters
		// Then they are matched literally
		It("should match wildcard characters in a prefix literally", func() {
			for _, w := range []string{"a_b", "100%", "back\\slash"} {
				_, err := s.Dictionary().Add(ctx, w)
				Expect(err).NotTo(HaveOccurred())
			}

			words := func(prefix string) []string {
				entries, err := s.Dictionary().List(ctx, store.ByPrefix(prefix))
				Expect(err).NotTo(HaveOccurred())
				var out []string
				for _, e := range entries {
					out = append(out, e.Word)
				}
				return out
			}

			Expect(words("%")).To(BeEmpty())
			Expect(words("a_")).To(Equal([]string{"a_b"}))
			Expect(words("100%")).To(Equal([]string{"100%"}))
			Expect(words("back\\")).To(Equal([]string{"back\\slash"}))

			count, err := s.Dictionary().Count(ctx, store.ByPrefix("_"))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
