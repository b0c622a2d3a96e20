package app

import (
	"fmt"

	"github.com/allisson/users/internal/metrics"
	userHTTP "github.com/allisson/users/internal/user/http"
	userRepository "github.com/allisson/users/internal/user/repository"
	userUseCase "github.com/allisson/users/internal/user/usecase"
)

// usersMetricsDomain labels the stored records gauge.
const usersMetricsDomain = "users"

// UserRepository returns the in-memory user store. Every caller shares the same instance.
func (c *Container) UserRepository() (*userRepository.InMemoryUserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// UserUseCase returns the user use case.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// UserHandler returns the HTTP handler for user operations.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		c.userHandler, err = c.initUserHandler()
		if err != nil {
			c.initErrors["userHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// initUserRepository creates the store and, when metrics are enabled, exports its size.
func (c *Container) initUserRepository() (*userRepository.InMemoryUserRepository, error) {
	repo := userRepository.NewInMemoryUserRepository()

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for user repository: %w", err)
	}
	if provider != nil {
		err := metrics.RegisterStoredRecordsGauge(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
			usersMetricsDomain,
			repo.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to register user store gauge: %w", err)
		}
	}

	return repo, nil
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	repo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	baseUseCase := userUseCase.NewUserUseCase(repo, userUseCase.Config{MinAge: c.config.UserMinAge})

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initUserHandler() (*userHTTP.UserHandler, error) {
	useCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return userHTTP.NewUserHandler(useCase, c.Logger()), nil
}
