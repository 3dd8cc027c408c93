package odeint_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOdeint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Odeint Suite")
}
