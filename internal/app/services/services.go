package services

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - UserService: user profiles, roles and sport affinities
// - SportService: the sport catalog
// - CourseService: courses, their capacity ledger and the directory search
// - CourseSportService: course sport memberships
// - SubscriptionService: the subscription lifecycle
