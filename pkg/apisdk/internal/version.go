package internal

const PackageVersion = "0.1.0"
