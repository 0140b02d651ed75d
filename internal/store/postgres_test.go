package store_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/core/db"
	"basegraph.app/cms/internal/store"
	"basegraph.app/cms/internal/store/storetest"
)

var database *db.DB

var _ = BeforeSuite(func(ctx SpecContext) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return
	}

	var err error
	database, err = db.New(ctx, db.Config{DSN: dsn, MaxConns: 4, MinConns: 1})
	Expect(err).NotTo(HaveOccurred())

	migrator, err := db.NewMigrator(database)
	Expect(err).NotTo(HaveOccurred())
	defer migrator.Close()
	Expect(migrator.Up(ctx)).To(Succeed())
})

var _ = AfterSuite(func() {
	if database != nil {
		database.Close()
	}
})

var _ = storetest.DescribeProvider("postgres", func(ctx context.Context) store.Provider {
	if database == nil {
		Skip("TEST_DATABASE_URL not set")
	}
	_, err := database.Pool().Exec(ctx, "TRUNCATE users, blog_posts, events, tracks, stories, partners")
	Expect(err).NotTo(HaveOccurred())
	return store.NewStores(database.Pool())
})
