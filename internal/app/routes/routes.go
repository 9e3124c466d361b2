package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/okandemir/librarium/internal/app/auth"
	"github.com/okandemir/librarium/internal/app/controllers"
	"github.com/okandemir/librarium/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	authorController *controllers.AuthorController,
	categoryController *controllers.CategoryController,
	bookController *controllers.BookController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	loanController *controllers.LoanController,
	fineController *controllers.FineController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Liveness probe
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Book browsing is open to anonymous visitors
	v1.GET("/books", bookController.ListBooks)
	v1.GET("/books/:id", bookController.GetBookByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Reference data: reads for any authenticated caller, writes
		// gated on the admin role
		authors := authenticated.Group("/authors")
		{
			authors.GET("", authorController.ListAuthors)
			authors.GET("/:id", authorController.GetAuthorByID)

			authorsAdmin := authors.Group("")
			authorsAdmin.Use(authMiddleware.Authorize(appauth.ActionWrite))
			{
				authorsAdmin.POST("", authorController.CreateAuthor)
				authorsAdmin.PUT("/:id", authorController.UpdateAuthor)
				authorsAdmin.DELETE("/:id", authorController.DeleteAuthor)
			}
		}

		categories := authenticated.Group("/categories")
		{
			categories.GET("", categoryController.ListCategories)
			categories.GET("/:id", categoryController.GetCategoryByID)

			categoriesAdmin := categories.Group("")
			categoriesAdmin.Use(authMiddleware.Authorize(appauth.ActionWrite))
			{
				categoriesAdmin.POST("", categoryController.CreateCategory)
				categoriesAdmin.PUT("/:id", categoryController.UpdateCategory)
				categoriesAdmin.DELETE("/:id", categoryController.DeleteCategory)
			}
		}

		booksAdmin := authenticated.Group("/books")
		booksAdmin.Use(authMiddleware.Authorize(appauth.ActionWrite))
		{
			booksAdmin.POST("", bookController.CreateBook)
			booksAdmin.PUT("/:id", bookController.UpdateBook)
			booksAdmin.DELETE("/:id", bookController.DeleteBook)
		}

		// Courses are administrative data, reads included
		courses := authenticated.Group("/courses")
		courses.Use(authMiddleware.Authorize(appauth.ActionWrite))
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetMe)
			students.PUT("/me", studentController.UpdateMe)
			students.GET("/:id", studentController.GetStudentByID)
			// Self-or-admin, enforced in the controller
			students.DELETE("/:id", studentController.DeleteStudent)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.Authorize(appauth.ActionWrite))
			{
				studentsAdmin.GET("", studentController.ListStudents)
				studentsAdmin.PUT("/:id", studentController.UpdateStudent)
			}
		}

		loans := authenticated.Group("/loans")
		loans.Use(authMiddleware.Authorize(appauth.ActionLend))
		{
			loans.POST("", loanController.IssueBook)
			loans.GET("", loanController.ListLoans)
			loans.GET("/:id", loanController.GetLoanByID)
			loans.POST("/:id/return", loanController.ReturnBook)
		}

		fines := authenticated.Group("/fines")
		fines.Use(authMiddleware.Authorize(appauth.ActionWrite))
		{
			fines.GET("", fineController.ListFines)
			fines.GET("/:id", fineController.GetFineByID)
			fines.POST("", fineController.CreateFine)
		}
	}
}
