package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogpress/internal/config"
	"blogpress/internal/mail"
	"blogpress/internal/model"
	mysqlClient "blogpress/internal/platform/mysql"
	rabbitmqClient "blogpress/internal/platform/rabbitmq"
	redisClient "blogpress/internal/platform/redis"
	"blogpress/internal/storage"
	"blogpress/internal/worker"
)

type App struct {
	Config      *config.Config
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	Mailer      *mail.SMTPDispatcher
	Attachments *storage.FileStore
	MailWorker  *worker.MailDispatchWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Reply{},
		&model.Subscriber{},
		&model.Newsletter{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MailQueue)
	if err != nil {
		return nil, err
	}

	attachments, err := storage.NewFileStore(cfg.Storage.NewsletterDir)
	if err != nil {
		return nil, err
	}

	mailer := mail.NewSMTPDispatcher(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
	)

	mailWorker := worker.NewMailDispatchWorker(mqConn, mailer, cfg.RabbitMQ.MailQueue)
	if err := mailWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start mail worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		Mailer:      mailer,
		Attachments: attachments,
		MailWorker:  mailWorker,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MailWorker != nil {
		a.MailWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
