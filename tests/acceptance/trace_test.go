package acceptance_test

import (
	"errors"

	"github.com/bfstark/bfstark/pkg/bfstark"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracing a Brainfuck program", func() {

	Context("with straight-line increment and output", func() {
		It("produces the printed byte and a trace that satisfies every constraint", func() {
			tables, err := bfstark.Trace([]byte("+++."), nil, bfstark.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(tables.Output).To(HaveLen(1))
			Expect(tables.Output[0].Value.Big().Int64()).To(Equal(int64(3)))
			Expect(bfstark.VerifyTrace(tables)).To(Succeed())
		})
	})

	Context("with a loop that zeroes the current cell", func() {
		It("halts with the cell at zero and a sound trace", func() {
			tables, err := bfstark.Trace([]byte("+++++[-]"), nil, bfstark.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			last := tables.Processor[len(tables.Processor)-1]
			Expect(last.Mv.IsZero()).To(BeTrue())
			Expect(bfstark.VerifyTrace(tables)).To(Succeed())
		})
	})

	Context("with a loop guarded by a zero cell", func() {
		It("skips the loop body entirely", func() {
			tables, err := bfstark.Trace([]byte("[+]+"), nil, bfstark.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			last := tables.Processor[len(tables.Processor)-1]
			Expect(last.Mv.Big().Int64()).To(Equal(int64(1)))
			Expect(bfstark.VerifyTrace(tables)).To(Succeed())
		})
	})

	Context("with input consumed and immediately echoed", func() {
		It("round-trips every input byte to output in order", func() {
			tables, err := bfstark.Trace([]byte(",.,.,."), []byte{1, 2, 3}, bfstark.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(tables.Output).To(HaveLen(3))
			for i, want := range []int64{1, 2, 3} {
				Expect(tables.Output[i].Value.Big().Int64()).To(Equal(want))
			}
			Expect(bfstark.VerifyTrace(tables)).To(Succeed())
		})
	})

	Context("when input is exhausted", func() {
		It("reports a typed execution error instead of hanging or wrapping", func() {
			_, err := bfstark.Trace([]byte(",,"), []byte{1}, bfstark.DefaultConfig())
			Expect(err).To(HaveOccurred())
			var typed *bfstark.Error
			Expect(errors.As(err, &typed)).To(BeTrue())
			Expect(typed.Code).To(Equal(bfstark.ErrCodeExecution))
		})
	})

	Context("when a witness has been tampered with", func() {
		It("is rejected by the constraint system even though it traced successfully", func() {
			tables, err := bfstark.Trace([]byte("+++."), nil, bfstark.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			tables.Processor[1].Mv = tables.Processor[0].Mv // forge a stalled ADD

			err = bfstark.VerifyTrace(tables)
			Expect(err).To(HaveOccurred())
			var typed *bfstark.Error
			Expect(errors.As(err, &typed)).To(BeTrue())
			Expect(typed.Code).To(Equal(bfstark.ErrCodeConstraint))
		})
	})
})
