package processor_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/ipc-worker/internal/processor"
	"github.com/kubev2v/ipc-worker/internal/store"
	"github.com/kubev2v/ipc-worker/internal/store/migrations"
)

var _ = Describe("Identity", func() {
	It("should return the payload unchanged", func() {
		result, err := processor.Identity.Process(context.Background(), "  Hello ")
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("  Hello "))
	})
})

var _ = Describe("Dictionary", func() {
	var (
		ctx  context.Context
		db   *sql.DB
		dict *processor.Dictionary
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		dict = processor.NewDictionary(store.NewStore(db).Dictionary())
	})

	AfterEach(func() {
		db.Close()
	})

	// Given an empty dictionary
	// When the same word is processed twice with different casing
	// Then both calls should refer to the same normalized entry
	It("should count normalized entries", func() {
		result, err := dict.Process(ctx, "Hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("hello:1"))

		result, err = dict.Process(ctx, "  HELLO  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("hello:2"))
	})

	It("should reject an empty entry", func() {
		_, err := dict.Process(ctx, "   ")
		Expect(err).To(MatchError(processor.ErrEmptyEntry))
	})

	It("should surface store failures", func() {
		db.Close()

		_, err := dict.Process(ctx, "hello")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(`failed to add "hello" to dictionary`))
	})
})
