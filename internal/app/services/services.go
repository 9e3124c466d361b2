// Package services contains the business logic layer. Each service is
// exposed as an interface backed by an unexported implementation so
// controllers depend on behavior, not wiring.
//
// Services defined in this package:
//   - AuthService: registration, login, token refresh and logout
//   - AuthorService, CategoryService, BookService, CourseService: catalog management
//   - StudentService: student profiles
//   - LendingService: issuing and returning books
//   - FineService: fine records
package services
